package nlp

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Gazetteer is a dictionary tagger: it labels known phrases wherever they
// occur on word boundaries, ignoring case and diacritics.
type Gazetteer struct {
	entries []gazetteerEntry
}

type gazetteerEntry struct {
	phrase string
	label  EntityLabel
}

func NewGazetteer(phrases map[string]EntityLabel) *Gazetteer {
	g := &Gazetteer{}
	for phrase, label := range phrases {
		folded := fold(phrase)
		if folded == "" {
			continue
		}
		g.entries = append(g.entries, gazetteerEntry{phrase: folded, label: label})
	}

	// longest phrases first so "Priya Sharma" wins over "Priya"
	sort.Slice(g.entries, func(i, j int) bool {
		if len(g.entries[i].phrase) != len(g.entries[j].phrase) {
			return len(g.entries[i].phrase) > len(g.entries[j].phrase)
		}
		return g.entries[i].phrase < g.entries[j].phrase
	})

	return g
}

func (g *Gazetteer) Tag(text string) []TaggedSpan {
	folded := fold(text)
	claimed := make([]bool, len(folded))

	type found struct {
		start int
		span  TaggedSpan
	}
	var hits []found

	for _, entry := range g.entries {
		offset := 0
		for {
			idx := strings.Index(folded[offset:], entry.phrase)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(entry.phrase)
			offset = end

			if !wordBoundary(folded, start, end) || anyClaimed(claimed, start, end) {
				continue
			}
			for i := start; i < end; i++ {
				claimed[i] = true
			}
			hits = append(hits, found{start: start, span: TaggedSpan{Text: folded[start:end], Label: entry.label}})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })

	spans := make([]TaggedSpan, 0, len(hits))
	for _, h := range hits {
		spans = append(spans, h.span)
	}
	return spans
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.TrimSpace(result))
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func wordBoundary(s string, start, end int) bool {
	if start > 0 && isWordByte(s[start-1]) {
		return false
	}
	if end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || b >= 0x80
}

func anyClaimed(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}
