package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_LeaveRequest(t *testing.T) {
	e := NewExtractor()

	bag := e.Extract("I want leave on Jan 15 for 3 days")

	assert.Contains(t, bag.Dates, "Jan 15")
	require.NotNil(t, bag.LeaveDuration.Days)
	assert.Equal(t, 3, *bag.LeaveDuration.Days)
	assert.Nil(t, bag.LeaveDuration.Weeks)
	assert.Equal(t, []string{"3 days"}, bag.LeaveDuration.Raw)
	assert.Equal(t, []string{"jan"}, bag.Months)
	assert.Equal(t, []string{"15", "3"}, bag.Numbers)
	assert.Empty(t, bag.LeaveTypes)
	assert.Nil(t, bag.PhoneNumber)
}

func TestExtractor_Extract_Empty(t *testing.T) {
	e := NewExtractor()

	assert.Equal(t, EmptyEntityBag(), e.Extract(""))
	assert.Equal(t, EmptyEntityBag(), e.Extract("   "))
	assert.Equal(t, EmptyEntityBag(), NewExtractor(WithTagger(NewGazetteer(nil))).Extract(""))
}

func TestExtractPhoneNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "bare number", text: "9876543210", expected: "9876543210"},
		{name: "inside sentence", text: "call me at 9876543210 please", expected: "9876543210"},
		{name: "first wins", text: "9876543210 or 9123456789", expected: "9876543210"},
		{name: "dash bounded", text: "+91-9876543210", expected: "9876543210"},
		{name: "country code glued", text: "+919876543210"},
		{name: "eleven digits", text: "98765432101"},
		{name: "short number", text: "call me at 5"},
		{name: "no digits", text: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPhoneNumber(tt.text)
			if tt.expected == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestExtractor_Extract_Dates(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "day month prefers first alternative", text: "from 5 March onwards", expected: []string{"5 Mar"}},
		{name: "month day case insensitive", text: "back on dec 3", expected: []string{"dec 3"}},
		{name: "iso and slashes deduplicated", text: "from 2024-03-10 to 12/03/2024", expected: []string{"2024-03-10", "12/03/2024"}},
		{name: "short slashes", text: "on 1/2/24", expected: []string{"1/2/24"}},
		{name: "none", text: "no dates here", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, e.Extract(tt.text).Dates)
		})
	}
}

func TestExtractor_Extract_Months(t *testing.T) {
	bag := NewExtractor().Extract("Either January or Jan works")

	assert.ElementsMatch(t, []string{"january", "jan"}, bag.Months)
}

func TestExtractor_Extract_LeaveDurationLastMatchWins(t *testing.T) {
	bag := NewExtractor().Extract("2 days or maybe 5 days and 1 week")

	require.NotNil(t, bag.LeaveDuration.Days)
	require.NotNil(t, bag.LeaveDuration.Weeks)
	assert.Equal(t, 5, *bag.LeaveDuration.Days)
	assert.Equal(t, 1, *bag.LeaveDuration.Weeks)
	assert.Equal(t, []string{"2 days", "5 days", "1 week"}, bag.LeaveDuration.Raw)
}

func TestExtractor_Extract_LeaveTypes(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "sick and casual", text: "I am unwell and need a day off", expected: []string{"sick", "casual"}},
		{name: "annual maps to earned", text: "Annual leave please", expected: []string{"earned"}},
		{name: "unpaid phrase", text: "leave without pay", expected: []string{"unpaid"}},
		{name: "parental", text: "maternity or paternity", expected: []string{"maternity", "paternity"}},
		{name: "urgent", text: "urgent leave", expected: []string{"emergency"}},
		{name: "none", text: "leave", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.expected, e.Extract(tt.text).LeaveTypes)
		})
	}
}

func TestExtractor_Extract_NumbersKeepDuplicates(t *testing.T) {
	bag := NewExtractor().Extract("3 and 3 and 42")

	assert.Equal(t, []string{"3", "3", "42"}, bag.Numbers)
}

func TestExtractor_Extract_NamedEntities(t *testing.T) {
	tagger := NewGazetteer(map[string]EntityLabel{
		"Priya Sharma": LabelPerson,
		"Priya":        LabelPerson,
		"Acme Corp":    LabelOther,
		"Diwali":       LabelDate,
	})
	e := NewExtractor(WithTagger(tagger))

	bag := e.Extract("Is Priya Sharma at Acme Corp on Diwali?")

	assert.Equal(t, []string{"priya sharma"}, bag.NamedEntities.Persons)
	assert.Equal(t, []string{"acme corp"}, bag.NamedEntities.Others)
	assert.Equal(t, []string{"diwali"}, bag.NamedEntities.Dates)
}

func TestExtractor_Extract_NoTaggerGivesEmptyNamedEntities(t *testing.T) {
	bag := NewExtractor().Extract("Is Priya Sharma around?")

	assert.Equal(t, EmptyEntityBag().NamedEntities, bag.NamedEntities)
}

func TestGazetteer_Tag(t *testing.T) {
	g := NewGazetteer(map[string]EntityLabel{"Priya": LabelPerson, "José": LabelPerson})

	assert.Empty(t, g.Tag("Priyanka is here"))
	assert.Equal(t, []TaggedSpan{{Text: "jose", Label: LabelPerson}}, g.Tag("ask Jose"))
	assert.Equal(t, []TaggedSpan{
		{Text: "priya", Label: LabelPerson},
		{Text: "priya", Label: LabelPerson},
	}, g.Tag("Priya and priya"))
}

func TestExtractor_Extract_Deterministic(t *testing.T) {
	e := NewExtractor()
	text := "sick leave from 12 March for 2 weeks, call 9876543210"
	first := e.Extract(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}
