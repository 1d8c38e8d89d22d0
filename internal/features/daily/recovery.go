// Package daily — recovery.go управляет окном восстановления серии.
// Снимок создаётся при обнаруженном обрыве, тратится не более одного раза
// и истекает по времени.
package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/features/profile"
)

func (s *Service) recoveryWindow() time.Duration {
	return time.Duration(s.cfg.RecoveryWindowHours) * time.Hour
}

// RecoveryStatus возвращает доступность восстановления, восстанавливаемый
// размер (половина снимка) и время до истечения. Истёкший снимок лениво
// очищается прямо здесь. Ошибки чтения считаются «недоступно» и логируются:
// статус — украшение профиля, не повод ронять карточку.
func (s *Service) RecoveryStatus(ctx context.Context, userID int64) (available bool, amount int, left time.Duration) {
	u, err := s.users.GetByUserID(ctx, nil, userID)
	if err != nil {
		if !errors.Is(err, common.ErrNoRecord) {
			log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения статуса восстановления")
		}
		return false, 0, 0
	}
	if !u.RecoveryAvailable || u.RecoveryStored < s.cfg.RecoveryMinStreak {
		return false, 0, 0
	}
	if u.RecoveryExpires != nil && s.clock.Now().After(*u.RecoveryExpires) {
		s.clearRecovery(ctx, u)
		return false, 0, 0
	}
	if u.RecoveryExpires != nil {
		left = u.RecoveryExpires.Sub(s.clock.Now())
	}
	return true, u.RecoveryStored / 2, left
}

// decideRestore — чистое решение о восстановлении по снимку.
// Возвращает новую серию (никогда не меньше текущей) и вердикт:
//   - ErrRecoveryUnavailable — снимка нет или он ниже минимума, ничего не трогать;
//   - ErrRecoveryExpired — снимок истёк, очистить без восстановления;
//   - ErrNothingToRestore — половина снимка не больше текущей серии,
//     снимок всё равно тратится;
//   - nil — восстановить серию до возвращённого значения.
func decideRestore(now time.Time, u *profile.UserStats, recoveryMin int) (int, error) {
	if !u.RecoveryAvailable || u.RecoveryStored < recoveryMin {
		return u.CurrentStreak, common.ErrRecoveryUnavailable
	}
	if u.RecoveryExpires != nil && now.After(*u.RecoveryExpires) {
		return u.CurrentStreak, common.ErrRecoveryExpired
	}
	if restored := u.RecoveryStored / 2; restored > u.CurrentStreak {
		return restored, nil
	}
	return u.CurrentStreak, common.ErrNothingToRestore
}

// Recover тратит снимок восстановления: серия становится
// max(текущая, снимок/2), поля восстановления очищаются безусловно —
// даже если восстанавливать оказалось нечего.
func (s *Service) Recover(ctx context.Context, userID int64) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := s.users.GetForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNoRecord) {
			return 0, common.ErrRecoveryUnavailable
		}
		return 0, err
	}

	restored, verdict := decideRestore(s.clock.Now(), u, s.cfg.RecoveryMinStreak)
	if errors.Is(verdict, common.ErrRecoveryUnavailable) {
		return 0, verdict
	}

	snapshot := u.RecoveryStored
	if verdict == nil {
		u.CurrentStreak = restored
		if u.CurrentStreak > u.MaxStreak {
			u.MaxStreak = u.CurrentStreak
		}
	}
	// Снимок тратится в любом исходе, кроме «недоступно»: и при
	// истечении, и когда восстанавливать оказалось нечего.
	resetRecovery(u)

	if err := s.users.Save(ctx, tx, u); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	if verdict != nil {
		return 0, verdict
	}

	if err := s.journal.Record(ctx, nil, userID, "streak_recover", map[string]any{
		"snapshot": snapshot,
		"restored": restored,
	}); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Не удалось записать событие streak_recover")
	}
	return restored, nil
}

// clearRecovery очищает истёкший снимок вне транзакции действия.
func (s *Service) clearRecovery(ctx context.Context, u *profile.UserStats) {
	resetRecovery(u)
	if err := s.users.Save(ctx, nil, u); err != nil {
		log.WithError(err).WithField("user_id", u.UserID).Error("Ошибка очистки истёкшего восстановления")
	}
}

func resetRecovery(u *profile.UserStats) {
	u.RecoveryAvailable = false
	u.RecoveryStored = 0
	u.RecoveryExpires = nil
}
