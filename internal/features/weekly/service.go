// Package weekly — service.go содержит бизнес-логику недельной цели.
package weekly

import (
	"context"
	"fmt"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/config"
	"bratva.chat/telegram-bot/internal/db/postgres"
)

// Status — состояние недельной цели для отображения.
type Status struct {
	WeekKey      string
	Total        int
	Participants int
	Goal         int
	Percent      int
}

// Service управляет недельной общей целью.
type Service struct {
	repo  *Repository
	clock *common.Clock
	cfg   *config.Config
}

// NewService создаёт новый сервис недельной статистики.
func NewService(repo *Repository, clock *common.Clock, cfg *config.Config) *Service {
	return &Service{repo: repo, clock: clock, cfg: cfg}
}

// Record учитывает одно успешное действие в текущей неделе.
// Вызывается внутри транзакции действия.
func (s *Service) Record(ctx context.Context, q postgres.Querier, userID int64) error {
	return s.repo.Record(ctx, q, s.clock.WeekKey(), userID)
}

// CurrentStatus возвращает прогресс текущей недели.
func (s *Service) CurrentStatus(ctx context.Context) (*Status, error) {
	wk := s.clock.WeekKey()
	total, participants, err := s.repo.GetWeek(ctx, wk)
	if err != nil {
		return nil, err
	}
	return &Status{
		WeekKey:      wk,
		Total:        total,
		Participants: participants,
		Goal:         s.cfg.WeeklyGoal,
		Percent:      PercentComplete(total, s.cfg.WeeklyGoal),
	}, nil
}

// PercentComplete вычисляет процент выполнения цели: min(100, total*100/goal).
func PercentComplete(total, goal int) int {
	if goal <= 0 {
		return 0
	}
	pct := total * 100 / goal
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatStatus форматирует отчёт о неделе для чата.
func FormatStatus(st *Status) string {
	return fmt.Sprintf(
		"📆 Неделя %s\n"+
			"Общий прогресс: %d/%d (%d%%)\n"+
			"Участников: %d\n"+
			"Цель: делайте ежедневку, чтобы дойти до цели недели!",
		st.WeekKey, st.Total, st.Goal, st.Percent, st.Participants,
	)
}
