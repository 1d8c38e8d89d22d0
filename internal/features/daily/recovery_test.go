package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/features/profile"
)

func TestDecideRestore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	const min = 10
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		u       profile.UserStats
		want    int
		wantErr error
	}{
		{
			"восстановление применяется",
			profile.UserStats{CurrentStreak: 1, RecoveryAvailable: true, RecoveryStored: 15, RecoveryExpires: &future},
			7, nil,
		},
		{
			"половина снимка не больше текущей — нечего восстанавливать",
			profile.UserStats{CurrentStreak: 8, RecoveryAvailable: true, RecoveryStored: 15, RecoveryExpires: &future},
			8, common.ErrNothingToRestore,
		},
		{
			"равенство половине — тоже нечего",
			profile.UserStats{CurrentStreak: 7, RecoveryAvailable: true, RecoveryStored: 15, RecoveryExpires: &future},
			7, common.ErrNothingToRestore,
		},
		{
			"снимок ниже минимума",
			profile.UserStats{CurrentStreak: 0, RecoveryAvailable: true, RecoveryStored: 9, RecoveryExpires: &future},
			0, common.ErrRecoveryUnavailable,
		},
		{
			"снимка нет",
			profile.UserStats{CurrentStreak: 3, RecoveryStored: 20},
			3, common.ErrRecoveryUnavailable,
		},
		{
			"снимок истёк",
			profile.UserStats{CurrentStreak: 2, RecoveryAvailable: true, RecoveryStored: 20, RecoveryExpires: &past},
			2, common.ErrRecoveryExpired,
		},
		{
			"без срока — не истекает",
			profile.UserStats{CurrentStreak: 0, RecoveryAvailable: true, RecoveryStored: 20},
			10, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decideRestore(now, &tt.u, min)
			assert.Equal(t, tt.want, got)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// Свойства восстановления: серия никогда не уменьшается,
// а применённое восстановление — ровно половина снимка.
func TestDecideRestoreNeverDecreases(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	rapid.Check(t, func(t *rapid.T) {
		u := profile.UserStats{
			CurrentStreak:     rapid.IntRange(0, 500).Draw(t, "current"),
			RecoveryAvailable: rapid.Bool().Draw(t, "available"),
			RecoveryStored:    rapid.IntRange(0, 500).Draw(t, "stored"),
			RecoveryExpires:   &future,
		}
		restored, err := decideRestore(now, &u, 10)
		assert.GreaterOrEqual(t, restored, u.CurrentStreak)
		if err == nil {
			assert.Equal(t, u.RecoveryStored/2, restored)
		}
	})
}

// Снимок одноразовый: после применения и очистки повторное
// восстановление недоступно до нового обрыва.
func TestRecoverySpentOnce(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)

	u := profile.UserStats{CurrentStreak: 1, RecoveryAvailable: true, RecoveryStored: 15, RecoveryExpires: &future}
	restored, err := decideRestore(now, &u, 10)
	require.NoError(t, err)
	assert.Equal(t, 7, restored)

	u.CurrentStreak = restored
	resetRecovery(&u)

	_, err = decideRestore(now, &u, 10)
	assert.ErrorIs(t, err, common.ErrRecoveryUnavailable)
}
