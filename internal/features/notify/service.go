// Package notify — service.go содержит логику напоминаний.
package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"bratva.chat/telegram-bot/internal/common"
)

// Service управляет уведомлениями.
type Service struct {
	repo  *Repository
	clock *common.Clock
}

// NewService создаёт сервис уведомлений.
func NewService(repo *Repository, clock *common.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// SetDaily переключает ежедневное напоминание.
func (s *Service) SetDaily(ctx context.Context, userID int64, enabled bool) error {
	return s.repo.SetDaily(ctx, userID, enabled)
}

// RemindPending шлёт напоминание всем подписчикам, не сделавшим
// сегодняшний ритуал. Недоставка логируется и не прерывает обход.
func (s *Service) RemindPending(ctx context.Context, send func(userID int64, text string) error) (int, error) {
	ids, err := s.repo.DailySubscribers(ctx, s.clock.TodayKey(), s.clock.Location().String())
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range ids {
		if err := send(id, "⏰ Напоминание: сегодняшний ритуал ещё не сделан. Серия ждёт!"); err != nil {
			log.WithError(err).WithField("user_id", id).Debug("Напоминание не доставлено")
			continue
		}
		sent++
	}
	return sent, nil
}
