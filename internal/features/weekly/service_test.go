package weekly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentComplete(t *testing.T) {
	tests := []struct {
		name  string
		total int
		goal  int
		want  int
	}{
		{"четверть", 50, 200, 25},
		{"ноль", 0, 200, 0},
		{"ровно цель", 200, 200, 100},
		{"перевыполнение обрезается", 350, 200, 100},
		{"нулевая цель — ноль без деления", 50, 0, 0},
		{"округление вниз", 1, 3, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentComplete(tt.total, tt.goal))
		})
	}
}

func TestFormatStatus(t *testing.T) {
	st := &Status{
		WeekKey:      "2026-W35",
		Total:        50,
		Participants: 7,
		Goal:         200,
		Percent:      25,
	}
	got := FormatStatus(st)
	assert.Contains(t, got, "2026-W35")
	assert.Contains(t, got, "50/200")
	assert.Contains(t, got, "25%")
	assert.Contains(t, got, "Участников: 7")
}
