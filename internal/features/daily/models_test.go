package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bratva.chat/telegram-bot/internal/common"
)

func TestDecideContinuity(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	const grace = 34
	const recoveryMin = 10

	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	tests := []struct {
		name     string
		last     *time.Time
		streak   int
		wantDec  continuityDecision
	}{
		{"первое действие в жизни", nil, 0, continuityDecision{}},
		{"вчера — продолжение", ago(20 * time.Hour), 5, continuityDecision{}},
		{"ровно граница окна — продолжение", ago(34 * time.Hour), 15, continuityDecision{}},
		{"чуть за окном, серия мала — обрыв без снимка", ago(35 * time.Hour), 9, continuityDecision{Broke: true}},
		{"за окном, серия на минимуме — снимок", ago(35 * time.Hour), 10, continuityDecision{Broke: true, Snapshot: 10}},
		{"долгий пропуск большой серии", ago(100 * time.Hour), 42, continuityDecision{Broke: true, Snapshot: 42}},
		{"обрыв при нулевой серии", ago(48 * time.Hour), 0, continuityDecision{Broke: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideContinuity(now, tt.last, tt.streak, grace, recoveryMin)
			assert.Equal(t, tt.wantDec, got)
		})
	}
}

// Свипер и путь действия обязаны видеть один и тот же обрыв: граница
// для SQL-предиката сброса должна быть эквивалентна StreakBroken,
// включая поведение ровно на краю льготного окна.
func TestSweepCutoff(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	const grace = 34
	cutoff := sweepCutoff(now, grace)

	assert.Equal(t, now.Add(-34*time.Hour), cutoff)

	lasts := []time.Time{
		now.Add(-24 * time.Hour),               // в пределах окна
		now.Add(-34 * time.Hour),               // ровно граница — не обрыв
		now.Add(-34*time.Hour - time.Second),   // чуть за окном
		now.Add(-100 * time.Hour),              // глубокий пропуск
		now,                                    // действие только что
	}
	for _, last := range lasts {
		assert.Equal(t,
			common.StreakBroken(now, last, grace),
			last.Before(cutoff),
			"last=%s", last,
		)
	}
}
