package analysis

import (
	"sort"

	"github.com/alexanderramin/lumen/internal/domain"
)

// EmotionalTrigger is a category that keeps showing up in low-mood notes.
type EmotionalTrigger struct {
	Category    string
	Occurrences int
	Percentage  float64
}

func emotionalTriggers(samples []domain.MoodSample, c Classifier) []EmotionalTrigger {
	counts := make(map[string]int)
	low := 0
	for _, s := range samples {
		if !s.IsCrisis() {
			continue
		}
		low++
		for category, score := range c.Classify(s.FreeText) {
			if score > 0 {
				counts[category]++
			}
		}
	}
	if low == 0 || len(counts) == 0 {
		return nil
	}

	out := make([]EmotionalTrigger, 0, len(counts))
	for category, n := range counts {
		out = append(out, EmotionalTrigger{
			Category:    category,
			Occurrences: n,
			Percentage:  float64(n) / float64(low) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Category < out[j].Category
	})
	return out
}
