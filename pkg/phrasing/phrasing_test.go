package phrasing

import (
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/nlp"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGemini struct {
	mu      sync.Mutex
	reply   string
	err     error
	delay   time.Duration
	prompts []string
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeGemini) Close() error { return nil }

func (f *fakeGemini) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func intentDef(id nlp.IntentID, name string) nlp.IntentDefinition {
	return nlp.IntentDefinition{ID: id, Name: name, Category: nlp.CategoryEmployeeSpecific}
}

func TestGeminiRenderer_Render(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := &fakeGemini{reply: "  Your manager is Rahul.  "}
	r := NewGeminiRenderer(client, logger)

	out, err := r.Render(context.Background(), Request{
		Intent: intentDef(nlp.IntentMyManager, "My Manager"),
		User:   &entity.Employee{EmployeeID: "E001", Name: "Priya Sharma"},
		Data:   map[string]any{"manager": "Rahul Mehta"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Your manager is Rahul.", out)

	require.Equal(t, 1, client.calls())
	assert.Contains(t, client.prompts[0], "Intent: My Manager (my_manager)")
	assert.Contains(t, client.prompts[0], "User: Priya Sharma (ID: E001)")
	assert.Contains(t, client.prompts[0], `Business data: {"manager":"Rahul Mehta"}`)
}

func TestGeminiRenderer_SkipsBusinessOnlyIntents(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := &fakeGemini{reply: "should not be used"}
	r := NewGeminiRenderer(client, logger)

	for _, id := range []nlp.IntentID{nlp.IntentLeaveRequest, nlp.IntentUpdatePhone, nlp.IntentEnterPhoneNumber, nlp.IntentUpdateEmergencyContact} {
		_, err := r.Render(context.Background(), Request{Intent: intentDef(id, string(id))})
		assert.ErrorIs(t, err, ErrSkipped)
	}
	assert.Zero(t, client.calls())
}

func TestGeminiRenderer_NilClient(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := NewGeminiRenderer(nil, logger)

	_, err := r.Render(context.Background(), Request{Intent: intentDef(nlp.IntentGreeting, "Greeting")})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeminiRenderer_Failures(t *testing.T) {
	logger, _ := test.NewNullLogger()

	tests := []struct {
		name    string
		client  *fakeGemini
		wantErr error
	}{
		{name: "remote error", client: &fakeGemini{err: errors.New("quota exceeded")}},
		{name: "blank reply", client: &fakeGemini{reply: "   "}, wantErr: ErrEmptyReply},
		{name: "timeout", client: &fakeGemini{reply: "late", delay: time.Second}, wantErr: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGeminiRenderer(tt.client, logger, WithTimeout(20*time.Millisecond))

			_, err := r.Render(context.Background(), Request{Intent: intentDef(nlp.IntentHolidays, "Holidays")})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGeminiRenderer_BreakerOpens(t *testing.T) {
	logger, _ := test.NewNullLogger()
	client := &fakeGemini{err: errors.New("unavailable")}
	r := NewGeminiRenderer(client, logger, WithBreakerSettings(gobreaker.Settings{
		Name:    "test",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	}))
	req := Request{Intent: intentDef(nlp.IntentBenefits, "Benefits")}

	for i := 0; i < 2; i++ {
		_, err := r.Render(context.Background(), req)
		require.Error(t, err)
	}

	_, err := r.Render(context.Background(), req)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, client.calls())
}

func TestBuildPrompt(t *testing.T) {
	days := 3
	phone := "9876543210"

	prompt := BuildPrompt(Request{
		Intent: intentDef(nlp.IntentLeaveBalance, "Leave Balance"),
		Entities: nlp.EntityBag{
			Dates:         []string{"Jan 15"},
			LeaveTypes:    []string{"sick"},
			LeaveDuration: nlp.LeaveDuration{Days: &days},
			PhoneNumber:   &phone,
		},
		State: entity.AwaitingSlot(entity.PendingPhoneNumber, nil),
	})

	assert.Contains(t, prompt, "User: Not authenticated")
	assert.Contains(t, prompt, "Entities extracted: Dates mentioned: Jan 15; Leave duration: 3 days; Leave types: sick; Phone number: 9876543210")
	assert.Contains(t, prompt, `Conversation state: {"pending_action":"awaiting_phone_number"}`)
	assert.NotContains(t, prompt, "Business data")
	assert.Contains(t, prompt, "Answer ONLY the specific question")
}

func TestBuildPrompt_IdleStateOmitted(t *testing.T) {
	prompt := BuildPrompt(Request{Intent: intentDef(nlp.IntentGreeting, "Greeting"), Entities: nlp.EmptyEntityBag()})

	assert.NotContains(t, prompt, "Conversation state")
	assert.NotContains(t, prompt, "Entities extracted")
}

func TestFallback(t *testing.T) {
	for _, id := range nlp.KnownIntents {
		assert.NotEmpty(t, Fallback(id), "intent %s has no fallback", id)
	}
	assert.Equal(t, defaultFallback, Fallback("unknown"))
}
