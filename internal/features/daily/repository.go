// Package daily — repository.go выполняет операции с таблицей daily_quests.
// Одна строка на (пользователь, календарный день, код квеста).
package daily

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bratva.chat/telegram-bot/internal/db/postgres"
)

// Repository предоставляет методы для работы с дневными квестами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий квестов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) q(q postgres.Querier) postgres.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// EnsureQuest создаёт строку квеста на день, если её ещё нет.
func (r *Repository) EnsureQuest(ctx context.Context, q postgres.Querier, userID int64, dayKey, code string) error {
	query := `
		INSERT INTO daily_quests (user_id, date, code, progress, target, done)
		VALUES ($1, $2, $3, 0, 1, FALSE)
		ON CONFLICT (user_id, date, code) DO NOTHING
	`
	_, err := r.q(q).Exec(ctx, query, userID, dayKey, code)
	if err != nil {
		return fmt.Errorf("ошибка создания дневного квеста: %w", err)
	}
	return nil
}

// CompleteQuest отмечает квест выполненным.
// Возвращает true только при первом выполнении за день — повторный
// вызов ничего не меняет (условие NOT done в самом UPDATE).
func (r *Repository) CompleteQuest(ctx context.Context, q postgres.Querier, userID int64, dayKey, code string) (bool, error) {
	query := `
		UPDATE daily_quests
		SET done = TRUE, progress = target
		WHERE user_id = $1 AND date = $2 AND code = $3 AND NOT done
	`
	tag, err := r.q(q).Exec(ctx, query, userID, dayKey, code)
	if err != nil {
		return false, fmt.Errorf("ошибка выполнения дневного квеста: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// QuestDone возвращает статус квеста на день.
// Отсутствие строки — квест не выполнен, без ошибки.
func (r *Repository) QuestDone(ctx context.Context, userID int64, dayKey, code string) (bool, error) {
	query := `SELECT done FROM daily_quests WHERE user_id = $1 AND date = $2 AND code = $3`
	var done bool
	err := r.db.QueryRow(ctx, query, userID, dayKey, code).Scan(&done)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка чтения дневного квеста: %w", err)
	}
	return done, nil
}
