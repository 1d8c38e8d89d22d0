package daily

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForStreak(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{1, 1},
		{7, 1},
		{9, 1},
		{10, 3},
		{11, 1},
		{20, 3},
		{100, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPForStreak(tt.streak), "streak=%d", tt.streak)
	}
}

func TestCoinsForStreak(t *testing.T) {
	tests := []struct {
		streak int
		want   int64
	}{
		{1, 0},
		{6, 0},
		{7, 1},
		{8, 0},
		{14, 2},
		{21, 3},
		{70, 10},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CoinsForStreak(tt.streak), "streak=%d", tt.streak)
	}
}
