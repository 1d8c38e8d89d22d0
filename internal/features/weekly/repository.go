// Package weekly ведёт общий счётчик действий и множество участников
// по ISO-неделям. repository.go выполняет операции с таблицами
// weekly_progress и weekly_participants.
package weekly

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bratva.chat/telegram-bot/internal/db/postgres"
)

// Repository предоставляет методы для недельной статистики.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий недельной статистики.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) q(q postgres.Querier) postgres.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Record учитывает одно действие: создаёт строку недели при необходимости,
// увеличивает общий счётчик ровно на 1 и идемпотентно добавляет участника.
func (r *Repository) Record(ctx context.Context, q postgres.Querier, weekKey string, userID int64) error {
	qr := r.q(q)

	_, err := qr.Exec(ctx, `
		INSERT INTO weekly_progress (week_key, total_actions)
		VALUES ($1, 1)
		ON CONFLICT (week_key) DO UPDATE SET total_actions = weekly_progress.total_actions + 1
	`, weekKey)
	if err != nil {
		return fmt.Errorf("ошибка обновления недельного счётчика: %w", err)
	}

	_, err = qr.Exec(ctx, `
		INSERT INTO weekly_participants (week_key, user_id)
		VALUES ($1, $2)
		ON CONFLICT (week_key, user_id) DO NOTHING
	`, weekKey, userID)
	if err != nil {
		return fmt.Errorf("ошибка добавления участника недели: %w", err)
	}
	return nil
}

// GetWeek возвращает общий счётчик и число участников недели.
// Для ещё не начатой недели — нули, без ошибки.
func (r *Repository) GetWeek(ctx context.Context, weekKey string) (total int, participants int, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT COALESCE((SELECT total_actions FROM weekly_progress WHERE week_key = $1), 0)`,
		weekKey,
	).Scan(&total)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка чтения недельного счётчика: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM weekly_participants WHERE week_key = $1`,
		weekKey,
	).Scan(&participants)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка подсчёта участников недели: %w", err)
	}
	return total, participants, nil
}
