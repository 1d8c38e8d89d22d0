// Package achievements — repository.go выполняет операции
// с леджерами user_achievements и user_titles.
// Оба леджера append-only: строки создаются один раз и не удаляются.
package achievements

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"bratva.chat/telegram-bot/internal/db/postgres"
)

// Repository предоставляет методы для работы с леджерами достижений и титулов.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий достижений.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) q(q postgres.Querier) postgres.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Award пытается выдать достижение. Возвращает true только при первой
// вставке: повторная проверка порога — no-op на уровне БД.
func (r *Repository) Award(ctx context.Context, q postgres.Querier, userID int64, code string) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id, code) DO NOTHING
	`
	tag, err := r.q(q).Exec(ctx, query, userID, code)
	if err != nil {
		return false, fmt.Errorf("ошибка выдачи достижения %s: %w", code, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAchievements возвращает достижения пользователя по времени получения.
func (r *Repository) ListAchievements(ctx context.Context, userID int64) ([]Earned, error) {
	query := `SELECT code, earned_at FROM user_achievements WHERE user_id = $1 ORDER BY earned_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения достижений: %w", err)
	}
	defer rows.Close()

	var out []Earned
	for rows.Next() {
		var e Earned
		if err := rows.Scan(&e.Code, &e.EarnedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GrantTitle добавляет титул в леджер (идемпотентно).
func (r *Repository) GrantTitle(ctx context.Context, q postgres.Querier, userID int64, title string) error {
	query := `
		INSERT INTO user_titles (user_id, code)
		VALUES ($1, $2)
		ON CONFLICT (user_id, code) DO NOTHING
	`
	_, err := r.q(q).Exec(ctx, query, userID, title)
	if err != nil {
		return fmt.Errorf("ошибка выдачи титула %s: %w", title, err)
	}
	return nil
}

// ListTitles возвращает титулы пользователя по времени получения.
func (r *Repository) ListTitles(ctx context.Context, userID int64) ([]string, error) {
	query := `SELECT code FROM user_titles WHERE user_id = $1 ORDER BY earned_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения титулов: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// HasTitle проверяет, есть ли у пользователя титул.
func (r *Repository) HasTitle(ctx context.Context, userID int64, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_titles WHERE user_id = $1 AND code = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID, title).Scan(&exists)
	return exists, err
}
