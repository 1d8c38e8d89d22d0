// Package daily — service.go содержит бизнес-логику ритуала: одна попытка —
// одна транзакция с блокировкой строки пользователя.
package daily

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/config"
	"bratva.chat/telegram-bot/internal/features/achievements"
	"bratva.chat/telegram-bot/internal/features/journal"
	"bratva.chat/telegram-bot/internal/features/profile"
	"bratva.chat/telegram-bot/internal/features/weekly"
)

// Service управляет ежедневным ритуалом.
type Service struct {
	db      *pgxpool.Pool
	users   *profile.Repository
	quests  *Repository
	weekly  *weekly.Service
	ach     *achievements.Service
	journal *journal.Repository
	clock   *common.Clock
	cfg     *config.Config
}

// NewService создаёт новый сервис ритуала.
func NewService(
	db *pgxpool.Pool,
	users *profile.Repository,
	quests *Repository,
	wk *weekly.Service,
	ach *achievements.Service,
	j *journal.Repository,
	clock *common.Clock,
	cfg *config.Config,
) *Service {
	return &Service{
		db:      db,
		users:   users,
		quests:  quests,
		weekly:  wk,
		ach:     ach,
		journal: j,
		clock:   clock,
		cfg:     cfg,
	}
}

// Perform обрабатывает одну попытку ритуала. Вся мутация — одна транзакция:
// блокировка строки пользователя (FOR UPDATE) сериализует двойную отправку
// и гонку со свипером. Отказ «сегодня уже сделано» — не ошибка, а Outcome
// с Performed=false.
func (s *Service) Perform(ctx context.Context, userID int64, username string) (*Outcome, error) {
	// Запись создаётся лениво до транзакции, чтобы FOR UPDATE всегда
	// находил строку.
	if err := s.users.Ensure(ctx, nil, userID, username); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := s.users.GetForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// Суточная граница: одно действие на локальный календарный день.
	// Отказ ничего не мутирует.
	if u.LastAction != nil && s.clock.DayKey(*u.LastAction) == s.clock.DayKey(now) {
		return &Outcome{Performed: false, UntilMidnight: s.clock.UntilMidnight()}, nil
	}

	out := &Outcome{Performed: true}

	dec := decideContinuity(now, u.LastAction, u.CurrentStreak, s.cfg.StreakGraceHours, s.cfg.RecoveryMinStreak)
	if dec.Broke {
		out.BrokeStreak = true
		u.LastBrokenStreak = u.CurrentStreak
		u.RecoveryStored = u.CurrentStreak
		u.RecoveryAvailable = dec.Snapshot > 0
		if dec.Snapshot > 0 {
			exp := now.Add(s.recoveryWindow())
			u.RecoveryExpires = &exp
			out.SnapshotSaved = dec.Snapshot
		}
		u.CurrentStreak = 0
	}

	la := now
	u.LastAction = &la
	u.TotalActions++
	u.CurrentStreak++
	if u.CurrentStreak > u.MaxStreak {
		u.MaxStreak = u.CurrentStreak
	}
	u.BreakNotified = false

	dayKey := s.clock.DayKey(now)
	if err := s.quests.EnsureQuest(ctx, tx, userID, dayKey, QuestCode); err != nil {
		return nil, err
	}
	questDone, err := s.quests.CompleteQuest(ctx, tx, userID, dayKey, QuestCode)
	if err != nil {
		return nil, err
	}
	if questDone {
		u.XP += QuestXPBonus
		u.Coins += QuestCoinBonus
		out.XPGained += QuestXPBonus
		out.CoinsGained += QuestCoinBonus
		// Серия квеста: день в день — растёт, после пропуска — заново с 1.
		if u.LastDaily != nil && s.clock.DayKey(*u.LastDaily) == s.clock.DayKey(now.AddDate(0, 0, -1)) {
			u.DailyStreak++
		} else {
			u.DailyStreak = 1
		}
		ld := now
		u.LastDaily = &ld
	}
	out.QuestDone = questDone

	xp := XPForStreak(u.CurrentStreak)
	coins := CoinsForStreak(u.CurrentStreak)
	u.XP += xp
	u.Coins += coins
	out.XPGained += xp
	out.CoinsGained += coins

	if err := s.weekly.Record(ctx, tx, userID); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, tx, u); err != nil {
		return nil, err
	}

	unlocks, err := s.ach.CheckUnlocks(ctx, tx, userID, u.CurrentStreak, u.TotalActions)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	out.Streak = u.CurrentStreak
	out.MaxStreak = u.MaxStreak
	out.Total = u.TotalActions
	out.Unlocked = unlocks
	return out, nil
}

// GetStats возвращает запись пользователя для отображения.
func (s *Service) GetStats(ctx context.Context, userID int64) (*profile.UserStats, error) {
	return s.users.GetByUserID(ctx, nil, userID)
}

// QuestStatus возвращает, выполнен ли сегодняшний квест.
func (s *Service) QuestStatus(ctx context.Context, userID int64) (bool, error) {
	return s.quests.QuestDone(ctx, userID, s.clock.TodayKey(), QuestCode)
}

// SweepBroken — один цикл свипера: находит серии, пережившие льготное окно
// без действия, обнуляет их и шлёт одноразовое уведомление.
// Сброс условный (предикат обрыва повторён в UPDATE): ритуал,
// закоммиченный между выборкой и сбросом, делает сброс no-op.
// Уведомление уходит только после подтверждённого сброса.
func (s *Service) SweepBroken(ctx context.Context, notify func(userID int64, streak int)) (int, error) {
	candidates, err := s.users.BreakCandidates(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	cutoff := sweepCutoff(now, s.cfg.StreakGraceHours)
	swept := 0
	for _, u := range candidates {
		if !common.StreakBroken(now, *u.LastAction, s.cfg.StreakGraceHours) {
			continue
		}
		broken, err := s.users.MarkBroken(ctx, u.UserID, cutoff)
		if err != nil {
			log.WithError(err).WithField("user_id", u.UserID).Error("Свипер: не удалось сбросить серию")
			continue
		}
		if !broken {
			// Пользователь успел сделать ритуал — серия жива, молчим.
			continue
		}
		if notify != nil {
			notify(u.UserID, u.CurrentStreak)
		}
		swept++
	}
	return swept, nil
}
