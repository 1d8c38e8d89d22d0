package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kyiv(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	return loc
}

func TestNewClockFallback(t *testing.T) {
	c, err := NewClock("Nowhere/Nonexistent")
	assert.Error(t, err)
	require.NotNil(t, c)
	// Запасная зона EET: +2 от UTC.
	_, offset := time.Now().In(c.Location()).Zone()
	assert.Equal(t, 2*60*60, offset)
}

func TestDayKey(t *testing.T) {
	loc := kyiv(t)
	c := NewClockAt(loc, time.Date(2026, 3, 15, 10, 0, 0, 0, loc))

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"полдень", time.Date(2026, 3, 15, 12, 0, 0, 0, loc), "2026-03-15"},
		{"за секунду до полуночи", time.Date(2026, 3, 15, 23, 59, 59, 0, loc), "2026-03-15"},
		{"ровно полночь — уже следующий день", time.Date(2026, 3, 16, 0, 0, 0, 0, loc), "2026-03-16"},
		// 21:30 UTC — это уже 23:30 в Киеве: ключ считается в зоне часов.
		{"UTC конвертируется в локальную зону", time.Date(2026, 3, 15, 21, 30, 0, 0, time.UTC), "2026-03-15"},
		{"поздний вечер UTC перетекает в новый день", time.Date(2026, 3, 15, 22, 30, 0, 0, time.UTC), "2026-03-16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DayKey(tt.at))
		})
	}
}

func TestTodayKey(t *testing.T) {
	loc := kyiv(t)
	c := NewClockAt(loc, time.Date(2026, 8, 30, 23, 59, 0, 0, loc))
	assert.Equal(t, "2026-08-30", c.TodayKey())
}

func TestUntilMidnight(t *testing.T) {
	loc := kyiv(t)

	c := NewClockAt(loc, time.Date(2026, 8, 30, 23, 0, 0, 0, loc))
	assert.Equal(t, time.Hour, c.UntilMidnight())

	c = NewClockAt(loc, time.Date(2026, 8, 30, 0, 0, 0, 0, loc))
	assert.Equal(t, 24*time.Hour, c.UntilMidnight())
}

func TestWeekKey(t *testing.T) {
	loc := kyiv(t)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"середина года", time.Date(2026, 8, 30, 12, 0, 0, 0, loc), "2026-W35"},
		// 1 января 2027 (пятница) относится к 53-й ISO-неделе 2026 года.
		{"начало января — неделя прошлого года", time.Date(2027, 1, 1, 12, 0, 0, 0, loc), "2026-W53"},
		{"однозначный номер недели дополняется нулём", time.Date(2026, 1, 7, 12, 0, 0, 0, loc), "2026-W02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClockAt(loc, tt.now)
			assert.Equal(t, tt.want, c.WeekKey())
		})
	}
}

func TestStreakBroken(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	const grace = 34

	tests := []struct {
		name  string
		pause time.Duration
		want  bool
	}{
		{"сутки — в пределах окна", 24 * time.Hour, false},
		{"ровно на границе окна — ещё не обрыв", 34 * time.Hour, false},
		{"чуть больше окна — обрыв", 34*time.Hour + time.Second, true},
		{"двое суток", 48 * time.Hour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakBroken(base.Add(tt.pause), base, grace))
		})
	}
}
