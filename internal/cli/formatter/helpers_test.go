package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "2d", FormatDays(2))
	assert.Equal(t, "2.5d", FormatDays(2.5))
	assert.Equal(t, "0.1d", FormatDays(1.0/12))
}

func TestFormatPercentAndSigned(t *testing.T) {
	assert.Equal(t, "75%", FormatPercent(0.75))
	assert.Equal(t, "+0.40", Signed(0.4))
	assert.Equal(t, "-0.35", Signed(-0.35))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "--", Timestamp(time.Time{}))
	assert.Equal(t, "2025-03-03 09:00", Timestamp(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdefgh", plainText(TruncID("abcdefghijkl")))
	assert.Equal(t, "abc", plainText(TruncID("abc")))
}

func TestRenderBox_Plain(t *testing.T) {
	SetPlain(true)
	defer func() { plain = false }()

	out := plainText(RenderBox("Trust", "body\n"))
	assert.Equal(t, "TRUST\n─────\nbody\n", out)
}
