package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Classifier scores free text against named categories. Only categories
// with a positive score are returned.
type Classifier interface {
	Classify(text string) map[string]float64
}

// KeywordClassifier scores a category by how many of its keywords appear
// in the text. Matching ignores case and accents.
type KeywordClassifier struct {
	categories []string
	keywords   map[string][]string
}

// NewKeywordClassifier creates a classifier from a category to keyword
// table. Keywords are normalized the same way as the text they match.
func NewKeywordClassifier(table map[string][]string) *KeywordClassifier {
	c := &KeywordClassifier{keywords: make(map[string][]string, len(table))}
	for category, words := range table {
		c.categories = append(c.categories, category)
		normalized := make([]string, 0, len(words))
		for _, w := range words {
			if w = normalizeText(w); w != "" {
				normalized = append(normalized, w)
			}
		}
		c.keywords[category] = normalized
	}
	return c
}

func (c *KeywordClassifier) Classify(text string) map[string]float64 {
	out := make(map[string]float64)
	normalized := normalizeText(text)
	if normalized == "" {
		return out
	}
	for _, category := range c.categories {
		var score float64
		for _, kw := range c.keywords[category] {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > 0 {
			out[category] = score
		}
	}
	return out
}

// normalizeText lowercases and strips combining marks, so "Estrés" and
// "estres" compare equal.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
