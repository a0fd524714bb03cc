package nlp

import (
	"math"
	"sort"
	"strings"
)

// Weights holds the additive scoring bonuses. They are empirically tuned; any
// retuning changes which intent wins on ambiguous queries.
type Weights struct {
	KeywordExact       float64
	KeywordPartial     float64
	ExampleExact       float64
	ExampleOverlap     float64
	HighOverlapRatio   float64
	HighOverlapBonus   float64
	ExampleSubstring   float64
	ExampleMinLength   int
	NameExact          float64
	ScoreCap           float64
	MaxThreshold       float64
	ConfidenceDivisor  float64
	DefaultPriority    int
	CapabilityQuestion float64
	CapabilityMultiple float64
}

func DefaultWeights() Weights {
	return Weights{
		KeywordExact:       0.4,
		KeywordPartial:     0.2,
		ExampleExact:       1.2,
		ExampleOverlap:     0.6,
		HighOverlapRatio:   0.8,
		HighOverlapBonus:   0.3,
		ExampleSubstring:   0.4,
		ExampleMinLength:   3,
		NameExact:          0.4,
		ScoreCap:           2.0,
		MaxThreshold:       0.4,
		ConfidenceDivisor:  1.5,
		DefaultPriority:    5,
		CapabilityQuestion: 1.0,
		CapabilityMultiple: 0.8,
	}
}

// intentPriority orders candidates so that on equal scores the earlier
// intent wins. Lower evaluates first.
var intentPriority = map[IntentID]int{
	IntentGeneralInquiry: 1,
	IntentLeavePolicy:    2,
	IntentLeaveBalance:   2,
	IntentMyManager:      2,
	IntentMyDepartment:   2,
	IntentGreeting:       10,
}

type Matcher struct {
	catalog *Catalog
	weights Weights
	boosts  []boostRule
	ordered []IntentDefinition
}

type MatcherOption func(*Matcher)

func WithWeights(w Weights) MatcherOption {
	return func(m *Matcher) {
		m.weights = w
	}
}

func NewMatcher(catalog *Catalog, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		catalog: catalog,
		weights: DefaultWeights(),
		boosts:  defaultBoostRules(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.ordered = catalog.All()
	sort.SliceStable(m.ordered, func(i, j int) bool {
		return m.priority(m.ordered[i].ID) < m.priority(m.ordered[j].ID)
	})

	return m
}

// Match scores every catalog intent against text and returns the best one when
// it clears min(threshold, MaxThreshold).
func (m *Matcher) Match(text string, threshold float64) MatchResult {
	query := strings.ToLower(strings.TrimSpace(text))
	words := wordSet(query)

	var best *IntentDefinition
	bestScore := 0.0

	for i := range m.ordered {
		score := m.Score(&m.ordered[i], query, words)
		if score > bestScore {
			bestScore = score
			best = &m.ordered[i]
		}
	}

	effective := math.Min(threshold, m.weights.MaxThreshold)
	if best == nil || bestScore < effective {
		return MatchResult{Score: bestScore}
	}

	matched := *best
	return MatchResult{
		Intent:     &matched,
		Confidence: math.Min(bestScore/m.weights.ConfidenceDivisor, 1.0),
		Score:      bestScore,
	}
}

// Score expects query already lowercased and trimmed.
func (m *Matcher) Score(def *IntentDefinition, query string, words map[string]struct{}) float64 {
	w := m.weights
	score := 0.0

	for _, keyword := range def.Keywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(query, kw) {
			score += w.KeywordExact
		} else if anyWordIn(strings.Fields(kw), words) {
			score += w.KeywordPartial
		}
	}

	for _, example := range def.Examples {
		ex := strings.ToLower(example)
		if strings.Contains(query, ex) {
			score += w.ExampleExact
			continue
		}

		exWords := wordSet(ex)
		if overlap := overlapCount(exWords, words); overlap > 0 {
			ratio := float64(overlap) / float64(len(exWords))
			score += ratio * w.ExampleOverlap
			if ratio > w.HighOverlapRatio {
				score += w.HighOverlapBonus
			}
		}

		if len(ex) > w.ExampleMinLength && strings.Contains(query, ex) {
			score += w.ExampleSubstring
		}
	}

	if strings.Contains(query, strings.ToLower(def.Name)) {
		score += w.NameExact
	}

	score += m.boost(def.ID, query, words)

	return math.Min(score, w.ScoreCap)
}

func (m *Matcher) boost(id IntentID, query string, words map[string]struct{}) float64 {
	if id == IntentGeneralInquiry {
		return m.capabilityBoost(words)
	}

	for _, rule := range m.boosts {
		if !rule.applies(id) {
			continue
		}
		if containsAny(query, rule.terms) {
			return rule.bonus
		}
		return 0
	}

	return 0
}

func (m *Matcher) capabilityBoost(words map[string]struct{}) float64 {
	capabilities := countIn(capabilityWords, words)
	questions := countIn(questionWords, words)

	switch {
	case capabilities >= 1 && questions >= 1:
		return m.weights.CapabilityQuestion
	case capabilities >= 2:
		return m.weights.CapabilityMultiple
	default:
		return 0
	}
}

func (m *Matcher) priority(id IntentID) int {
	if p, ok := intentPriority[id]; ok {
		return p
	}
	return m.weights.DefaultPriority
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func overlapCount(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

func anyWordIn(candidates []string, words map[string]struct{}) bool {
	for _, c := range candidates {
		if _, ok := words[c]; ok {
			return true
		}
	}
	return false
}

func countIn(candidates []string, words map[string]struct{}) int {
	n := 0
	for _, c := range candidates {
		if _, ok := words[c]; ok {
			n++
		}
	}
	return n
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
