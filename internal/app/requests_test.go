package app

import (
	"testing"
	"time"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/stretchr/testify/assert"
)

func TestAnalysisRequest_Resolve(t *testing.T) {
	fixed := time.Date(2025, 3, 3, 9, 0, 0, 0, time.FixedZone("COT", -5*3600))

	days, now := AnalysisRequest{UserID: "u", Now: &fixed}.Resolve(14)
	assert.Equal(t, 14, days)
	assert.Equal(t, time.UTC, now.Location())
	assert.True(t, fixed.Equal(now))

	days, _ = NewAnalysisRequest("u").Resolve(14)
	assert.Equal(t, DefaultLookbackDays, days)

	days, _ = AnalysisRequest{UserID: "u"}.Resolve(0)
	assert.Equal(t, DefaultLookbackDays, days)
}

func TestPromptSignal_Text(t *testing.T) {
	assert.Empty(t, PromptSignal{}.Text())
	assert.Equal(t, "hola", PromptSignal{Insight: &analysis.Insight{Text: "hola"}}.Text())
}
