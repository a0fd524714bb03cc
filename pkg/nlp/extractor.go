package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

const monthAlternation = `(?:Jan|January|Feb|February|Mar|March|Apr|April|May|Jun|June|Jul|July|Aug|August|Sep|September|Oct|October|Nov|November|Dec|December)`

var (
	phonePattern = regexp.MustCompile(`(?:^|\D)(\d{10})(?:\D|$)`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{1,2}\s+` + monthAlternation),
		regexp.MustCompile(`(?i)` + monthAlternation + `\s+\d{1,2}`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
	}

	dayPattern    = regexp.MustCompile(`(?i)(\d+)\s*(?:day|days|d)\b`)
	weekPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:week|weeks|w)\b`)
	numberPattern = regexp.MustCompile(`\b\d+\b`)

	monthNames = []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec",
	}
)

type leaveTypeSynonyms struct {
	tag      string
	synonyms []string
}

var leaveTypeTable = []leaveTypeSynonyms{
	{tag: "sick", synonyms: []string{"sick", "ill", "illness", "unwell"}},
	{tag: "casual", synonyms: []string{"casual", "day off"}},
	{tag: "earned", synonyms: []string{"earned", "annual"}},
	{tag: "maternity", synonyms: []string{"maternity", "maternal"}},
	{tag: "paternity", synonyms: []string{"paternity", "paternal"}},
	{tag: "unpaid", synonyms: []string{"unpaid", "without pay"}},
	{tag: "emergency", synonyms: []string{"emergency", "urgent"}},
}

type Extractor struct {
	tagger Tagger
}

type ExtractorOption func(*Extractor)

// WithTagger enables named-entity extraction.
func WithTagger(t Tagger) ExtractorOption {
	return func(e *Extractor) {
		e.tagger = t
	}
}

func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract never fails; text without recognisable slots yields EmptyEntityBag.
func (e *Extractor) Extract(text string) EntityBag {
	bag := EmptyEntityBag()
	if strings.TrimSpace(text) == "" {
		return bag
	}

	bag.PhoneNumber = ExtractPhoneNumber(text)
	bag.Dates = extractDates(text)
	bag.Months = extractMonths(text)
	bag.LeaveDuration = extractLeaveDuration(text)
	bag.LeaveTypes = extractLeaveTypes(text)
	bag.Numbers = extractNumbers(text)
	bag.NamedEntities = e.extractNamedEntities(text)

	return bag
}

// ExtractPhoneNumber returns the first run of exactly ten digits.
func ExtractPhoneNumber(text string) *string {
	match := phonePattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	phone := match[1]
	return &phone
}

func extractDates(text string) []string {
	dates := []string{}
	seen := make(map[string]struct{})

	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			dates = append(dates, match)
		}
	}

	return dates
}

func extractMonths(text string) []string {
	lower := strings.ToLower(text)
	months := []string{}
	for _, month := range monthNames {
		if strings.Contains(lower, month) {
			months = append(months, month)
		}
	}
	return months
}

func extractLeaveDuration(text string) LeaveDuration {
	duration := LeaveDuration{Raw: []string{}}

	for _, match := range dayPattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(match[1]); err == nil {
			duration.Days = &n
		}
		duration.Raw = append(duration.Raw, match[0])
	}

	for _, match := range weekPattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(match[1]); err == nil {
			duration.Weeks = &n
		}
		duration.Raw = append(duration.Raw, match[0])
	}

	return duration
}

func extractLeaveTypes(text string) []string {
	lower := strings.ToLower(text)
	types := []string{}
	for _, entry := range leaveTypeTable {
		if containsAny(lower, entry.synonyms) {
			types = append(types, entry.tag)
		}
	}
	return types
}

func extractNumbers(text string) []string {
	numbers := numberPattern.FindAllString(text, -1)
	if numbers == nil {
		return []string{}
	}
	return numbers
}

func (e *Extractor) extractNamedEntities(text string) NamedEntities {
	entities := EmptyEntityBag().NamedEntities
	if e.tagger == nil {
		return entities
	}

	for _, span := range e.tagger.Tag(text) {
		switch span.Label {
		case LabelPerson:
			entities.Persons = append(entities.Persons, span.Text)
		case LabelDate:
			entities.Dates = append(entities.Dates, span.Text)
		default:
			entities.Others = append(entities.Others, span.Text)
		}
	}

	return entities
}
