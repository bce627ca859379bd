package app

import (
	"time"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/trust"
)

// DefaultLookbackDays is used when a request leaves Days unset.
const DefaultLookbackDays = 30

type AnalysisRequest struct {
	UserID string
	Days   int
	Now    *time.Time
}

// NewAnalysisRequest creates a request for userID with the default window.
func NewAnalysisRequest(userID string) AnalysisRequest {
	return AnalysisRequest{
		UserID: userID,
		Days:   DefaultLookbackDays,
	}
}

// Resolve fills defaults and returns the effective lookback and clock.
func (r AnalysisRequest) Resolve(defaultDays int) (days int, now time.Time) {
	now = time.Now().UTC()
	if r.Now != nil {
		now = r.Now.UTC()
	}
	days = r.Days
	if days <= 0 {
		days = defaultDays
	}
	if days <= 0 {
		days = DefaultLookbackDays
	}
	return days, now
}

type InsightRequest struct {
	UserID      string
	CurrentMood *int
	Now         *time.Time
}

// PromptSignal is everything the conversation layer needs to shape one
// reply: the insight to mention, the tone policy and a progress highlight.
type PromptSignal struct {
	UserID     string
	Insight    *analysis.Insight
	TrustLevel trust.Level
	Policy     trust.Policy
	Highlight  *analysis.Achievement
	ComputedAt time.Time
}

// Text is the insight sentence, or "" when there is none.
func (p PromptSignal) Text() string {
	if p.Insight == nil {
		return ""
	}
	return p.Insight.Text
}

type DashboardResponse struct {
	UserID      string
	Days        int
	Patterns    analysis.PatternReport
	Cycles      analysis.CycleReport
	Resilience  analysis.ResilienceReport
	Progress    analysis.ProgressReport
	Trust       trust.Info
	GeneratedAt time.Time
}
