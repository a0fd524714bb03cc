package chatService

import (
	authService "EmployeeAssistant/internal/api/auth/service"
	"EmployeeAssistant/internal/api/chat"
	chatRepository "EmployeeAssistant/internal/api/chat/repository"
	hrService "EmployeeAssistant/internal/api/hr/service"
	"EmployeeAssistant/internal/entity"
	"EmployeeAssistant/pkg/nlp"
	"EmployeeAssistant/pkg/phrasing"
	"context"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	defaultThreshold   = 0.5
	defaultMaxAttempts = 3
)

type IChatService interface {
	// HandleTurn runs one turn against a session snapshot. It never fails;
	// every problem is reported inside the envelope.
	HandleTurn(ctx context.Context, turn chat.Turn) chat.TurnResult

	SendMessage(ctx context.Context, login *entity.UserLoginData, req chat.SendMessageRequest) (chat.SendMessageResponse, error)
	ResetSession(ctx context.Context, login *entity.UserLoginData, sessionID string) error
	ListIntents() chat.IntentListResponse
}

type chatService struct {
	log         *logrus.Logger
	catalog     *nlp.Catalog
	matcher     nlp.IMatcher
	extractor   nlp.IExtractor
	hr          hrService.IHRService
	auth        authService.AuthService
	renderer    phrasing.Renderer
	sessions    chatRepository.Repository
	newID       func() string
	threshold   float64
	maxAttempts int
}

type Option func(*chatService)

func WithThreshold(threshold float64) Option {
	return func(s *chatService) {
		s.threshold = threshold
	}
}

// WithMaxAttempts bounds how many unusable replies a pending slot accepts
// before the flow is abandoned.
func WithMaxAttempts(n int) Option {
	return func(s *chatService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func WithSessionIDGenerator(fn func() string) Option {
	return func(s *chatService) {
		s.newID = fn
	}
}

func New(
	log *logrus.Logger,
	catalog *nlp.Catalog,
	matcher nlp.IMatcher,
	extractor nlp.IExtractor,
	hr hrService.IHRService,
	auth authService.AuthService,
	renderer phrasing.Renderer,
	sessions chatRepository.Repository,
	opts ...Option,
) IChatService {
	s := &chatService{
		log:         log,
		catalog:     catalog,
		matcher:     matcher,
		extractor:   extractor,
		hr:          hr,
		auth:        auth,
		renderer:    renderer,
		sessions:    sessions,
		newID:       newSessionID,
		threshold:   floatFromEnv("INTENT_THRESHOLD", defaultThreshold),
		maxAttempts: intFromEnv("SLOT_MAX_ATTEMPTS", defaultMaxAttempts),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *chatService) ListIntents() chat.IntentListResponse {
	return chat.IntentListResponse{
		General:          summarize(s.catalog.General()),
		EmployeeSpecific: summarize(s.catalog.EmployeeSpecific()),
	}
}

func summarize(defs []nlp.IntentDefinition) []chat.IntentSummary {
	out := make([]chat.IntentSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, chat.IntentSummary{ID: d.ID, Name: d.Name, Examples: d.Examples})
	}
	return out
}

func floatFromEnv(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func intFromEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
