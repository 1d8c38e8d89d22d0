package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 0},
		{-5, 0},
		{9, 0},
		{10, 1},
		{39, 1},
		{40, 2},
		{90, 3},
		{1000, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.xp), "xp=%d", tt.xp)
	}
}

// Свойство: уровень не убывает с ростом опыта.
func TestLevelMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xp := rapid.IntRange(0, 1_000_000).Draw(t, "xp")
		assert.LessOrEqual(t, Level(xp), Level(xp+1))
	})
}
