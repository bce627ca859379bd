package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLevel(t *testing.T) {
	assert.False(t, ValidLevel(0))
	assert.True(t, ValidLevel(1))
	assert.True(t, ValidLevel(10))
	assert.False(t, ValidLevel(11))
}

func TestMoodSample_IsCrisis(t *testing.T) {
	assert.True(t, MoodSample{Level: 4}.IsCrisis())
	assert.False(t, MoodSample{Level: 5}.IsCrisis())
}

func TestValidHabitCategory(t *testing.T) {
	assert.True(t, ValidHabitCategory(CategoryPhysical))
	assert.False(t, ValidHabitCategory("hobby"))
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, 1.0, ClampUnit(1.7, -1, 1))
	assert.Equal(t, -1.0, ClampUnit(-3, -1, 1))
	assert.Equal(t, 0.25, ClampUnit(0.25, -1, 1))
}

func TestCoalesceTimezone(t *testing.T) {
	assert.Equal(t, "UTC", CoalesceTimezone(""))
	assert.Equal(t, "America/Bogota", CoalesceTimezone("America/Bogota"))
}
