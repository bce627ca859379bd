package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		count int
		want  Level
	}{
		{0, Level1}, {1, Level1}, {10, Level1},
		{11, Level2}, {30, Level2},
		{31, Level3}, {60, Level3},
		{61, Level4}, {100, Level4},
		{101, Level5}, {10000, Level5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.count), "count %d", tt.count)
	}
}

func TestLevelFor_NonDecreasing(t *testing.T) {
	prev := LevelFor(0)
	for n := 1; n <= 200; n++ {
		l := LevelFor(n)
		assert.GreaterOrEqual(t, l, prev, "count %d", n)
		prev = l
	}
}

func TestMessagesToNext(t *testing.T) {
	assert.Equal(t, 11, MessagesToNext(0))
	assert.Equal(t, 1, MessagesToNext(10))
	assert.Equal(t, 20, MessagesToNext(11))
	assert.Equal(t, 1, MessagesToNext(100))
	assert.Equal(t, 0, MessagesToNext(101))
	assert.Equal(t, 0, MessagesToNext(500))
}

func TestPolicyFor(t *testing.T) {
	p1 := PolicyFor(Level1)
	assert.Equal(t, "Conociendo", p1.Label)
	assert.Equal(t, 1, p1.MaxSentences)
	assert.Len(t, p1.AllowedExpressions, 5)
	assert.Len(t, p1.ForbiddenPhrases, 15)

	p5 := PolicyFor(Level5)
	assert.Equal(t, "Íntimo", p5.Label)
	assert.Equal(t, 3, p5.MaxSentences)
	assert.Len(t, p5.AllowedExpressions, 25, "expressions accumulate across levels")
	assert.Subset(t, p5.AllowedExpressions, p1.AllowedExpressions)

	assert.Equal(t, p1.Label, PolicyFor(Level(9)).Label)

	p1.ForbiddenPhrases[0] = "mutated"
	assert.Equal(t, "estoy aquí para ti", PolicyFor(Level1).ForbiddenPhrases[0])
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "L3 Construyendo", Level3.String())
	assert.Equal(t, "unknown", Level(0).Label())
}
