package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

const (
	// MinDataPoints is the smallest window any report is computed from.
	MinDataPoints = 5
	// MinHabitSamples applies separately to habit-day and non-habit-day sets.
	MinHabitSamples = 5
	// ReportThreshold is the smallest |impact| a correlation is reported at.
	ReportThreshold = 0.3
	// ConfidenceSamples is the sample count at which confidence saturates.
	ConfidenceSamples = 20
	// MonthlyMinSamples gates the week-of-month pattern.
	MonthlyMinSamples = 20

	MaxCausalFactors      = 5
	MaxRecoveryStrategies = 3
	MaxRecommendations    = 3

	thresholdEpsilon = 1e-9
)

// Window is one user's history loaded for analysis.
type Window struct {
	UserID      string
	Samples     []domain.MoodSample
	Habits      []domain.Habit
	Completions []domain.HabitCompletion
	Now         time.Time
}

// Warning records an input row that was skipped.
type Warning struct {
	Ref    string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Ref, w.Reason)
}

// Analyzer runs the pure computations. It holds the pluggable classifiers
// and is safe for concurrent use.
type Analyzer struct {
	events   Classifier
	typical  map[string]Effect
	triggers Classifier
}

type Option func(*Analyzer)

// WithEventClassifier replaces the causal event classifier. typical maps
// each category it can return to its expected effect.
func WithEventClassifier(c Classifier, typical map[string]Effect) Option {
	return func(a *Analyzer) {
		a.events = c
		a.typical = typical
	}
}

// WithTriggerClassifier replaces the low-mood trigger classifier.
func WithTriggerClassifier(c Classifier) Option {
	return func(a *Analyzer) {
		a.triggers = c
	}
}

// NewAnalyzer creates an Analyzer with the built-in dictionaries. Options
// replace the classifiers.
func NewAnalyzer(opts ...Option) *Analyzer {
	typical := make(map[string]Effect, len(DefaultEventCategories))
	for _, c := range DefaultEventCategories {
		typical[c.Name] = c.Typical
	}
	a := &Analyzer{
		events:   NewKeywordClassifier(eventKeywordTable(DefaultEventCategories)),
		typical:  typical,
		triggers: NewKeywordClassifier(DefaultTriggerKeywords),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// cleanSamples drops samples with no timestamp or an out-of-range level and
// returns the rest in chronological order.
func cleanSamples(in []domain.MoodSample) ([]domain.MoodSample, []Warning) {
	out := make([]domain.MoodSample, 0, len(in))
	var warnings []Warning
	for _, s := range in {
		switch {
		case s.Timestamp.IsZero():
			warnings = append(warnings, Warning{Ref: "mood " + s.ID, Reason: "missing timestamp"})
		case !domain.ValidLevel(s.Level):
			warnings = append(warnings, Warning{Ref: "mood " + s.ID, Reason: fmt.Sprintf("level %d out of range", s.Level)})
		default:
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, warnings
}

func cleanCompletions(in []domain.HabitCompletion) ([]domain.HabitCompletion, []Warning) {
	out := make([]domain.HabitCompletion, 0, len(in))
	var warnings []Warning
	for _, c := range in {
		if c.Timestamp.IsZero() {
			warnings = append(warnings, Warning{Ref: "completion " + c.ID, Reason: "missing timestamp"})
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, warnings
}
