// Package rating — service.go применяет результат матча к двум записям
// пользователей в одной транзакции.
package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/config"
	"bratva.chat/telegram-bot/internal/features/profile"
)

// Service обновляет рейтинги после матчей.
type Service struct {
	db    *pgxpool.Pool
	users *profile.Repository
	cfg   *config.Config
}

// NewService создаёт новый сервис рейтинга.
func NewService(db *pgxpool.Pool, users *profile.Repository, cfg *config.Config) *Service {
	return &Service{db: db, users: users, cfg: cfg}
}

// Update применяет результат матча (с точки зрения игрока A) к обоим
// рейтингам. Счётчики побед/поражений растут только при решающем исходе,
// ничья меняет только рейтинги. Отсутствующая запись любого из игроков —
// no-op с логом, не ошибка вызывающему.
//
// Обе строки блокируются в порядке возрастания user_id, чтобы два
// одновременных матча не взяли блокировки крест-накрест.
func (s *Service) Update(ctx context.Context, userA, userB int64, result float64) error {
	if result != ResultWin && result != ResultLoss && result != ResultDraw {
		return fmt.Errorf("недопустимый результат матча: %v", result)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	first, second := userA, userB
	if second < first {
		first, second = second, first
	}

	locked := make(map[int64]*profile.UserStats, 2)
	for _, id := range []int64{first, second} {
		u, err := s.users.GetForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, common.ErrNoRecord) {
				log.WithField("user_id", id).Warn("Обновление рейтинга пропущено: запись не найдена")
				return nil
			}
			return err
		}
		locked[id] = u
	}
	a, b := locked[userA], locked[userB]

	k := s.cfg.RatingKFactor
	newA := Next(a.Rating, b.Rating, result, k)
	newB := Next(b.Rating, a.Rating, 1-result, k)
	a.Rating, b.Rating = newA, newB

	switch result {
	case ResultWin:
		a.Wins++
		b.Losses++
	case ResultLoss:
		b.Wins++
		a.Losses++
	}

	if err := s.users.Save(ctx, tx, a); err != nil {
		return err
	}
	if err := s.users.Save(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	log.WithFields(log.Fields{
		"user_a": userA, "user_b": userB,
		"rating_a": newA, "rating_b": newB, "result": result,
	}).Info("Рейтинг обновлён")
	return nil
}
