// Package notify управляет настройками уведомлений и ежедневным
// напоминанием о ритуале. repository.go работает с таблицей user_prefs.
package notify

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с настройками уведомлений.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий настроек.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SetDaily включает или выключает ежедневное напоминание.
func (r *Repository) SetDaily(ctx context.Context, userID int64, enabled bool) error {
	query := `
		INSERT INTO user_prefs (user_id, notify_daily)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET notify_daily = EXCLUDED.notify_daily
	`
	if _, err := r.db.Exec(ctx, query, userID, enabled); err != nil {
		return fmt.Errorf("ошибка обновления настроек уведомлений: %w", err)
	}
	return nil
}

// DailySubscribers возвращает пользователей с включённым напоминанием,
// не делавших ритуал в указанный день. День считается в таймзоне бота.
func (r *Repository) DailySubscribers(ctx context.Context, dayKey, tzName string) ([]int64, error) {
	query := `
		SELECT p.user_id
		FROM user_prefs p
		JOIN user_stats s ON s.user_id = p.user_id
		WHERE p.notify_daily
		  AND (s.last_action IS NULL OR to_char(s.last_action AT TIME ZONE $2, 'YYYY-MM-DD') <> $1)
	`
	rows, err := r.db.Query(ctx, query, dayKey, tzName)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки подписчиков напоминаний: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
