// Package journal ведёт append-only журнал событий (покупки, титулы,
// восстановления). Строки создаются один раз и не удаляются.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bratva.chat/telegram-bot/internal/db/postgres"
)

// Event — одна строка журнала.
type Event struct {
	ID        int64
	UserID    int64
	Type      string
	Meta      string // JSON
	CreatedAt time.Time
}

// Repository пишет и читает таблицу events.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий журнала.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) q(q postgres.Querier) postgres.Querier {
	if q != nil {
		return q
	}
	return r.db
}

// Record записывает событие. meta сериализуется в JSON (nil — пустой объект).
func (r *Repository) Record(ctx context.Context, q postgres.Querier, userID int64, etype string, meta map[string]any) error {
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("ошибка сериализации meta: %w", err)
	}
	query := `INSERT INTO events (user_id, type, meta) VALUES ($1, $2, $3)`
	if _, err := r.q(q).Exec(ctx, query, userID, etype, raw); err != nil {
		return fmt.Errorf("ошибка записи события %s: %w", etype, err)
	}
	return nil
}

// GetRecent возвращает последние события пользователя.
func (r *Repository) GetRecent(ctx context.Context, userID int64, limit int) ([]Event, error) {
	query := `
		SELECT id, user_id, type, meta, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Meta, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PurgeBefore удаляет события старше указанного момента.
// Задел под политику ретеншена; пока никем не вызывается.
func (r *Repository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки журнала: %w", err)
	}
	return tag.RowsAffected(), nil
}
