// Package profile — repository.go выполняет операции с таблицей user_stats.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/db/postgres"
)

// Полный список колонок в порядке сканирования scanUserStats.
const userStatsColumns = `id, user_id, username, last_action, total_actions,
	current_streak, max_streak, break_notified, xp, coins, rating, wins, losses,
	daily_streak, last_daily, COALESCE(profile_status, ''), equipped_title, pet_name,
	last_broken_streak, recovery_available, recovery_stored, recovery_expires,
	created_at, updated_at`

// Repository предоставляет методы для работы с таблицей user_stats.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий записей пользователей.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// q возвращает исполнителя запроса: переданную транзакцию или пул.
func (r *Repository) q(q postgres.Querier) postgres.Querier {
	if q != nil {
		return q
	}
	return r.db
}

func scanUserStats(row pgx.Row) (*UserStats, error) {
	var u UserStats
	err := row.Scan(
		&u.ID, &u.UserID, &u.Username, &u.LastAction, &u.TotalActions,
		&u.CurrentStreak, &u.MaxStreak, &u.BreakNotified, &u.XP, &u.Coins,
		&u.Rating, &u.Wins, &u.Losses, &u.DailyStreak, &u.LastDaily,
		&u.ProfileStatus, &u.EquippedTitle, &u.PetName,
		&u.LastBrokenStreak, &u.RecoveryAvailable, &u.RecoveryStored, &u.RecoveryExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Ensure создаёт запись пользователя, если её ещё нет, и обновляет username.
// Вызывается на каждом входящем сообщении (ленивое создание записи).
func (r *Repository) Ensure(ctx context.Context, q postgres.Querier, userID int64, username string) error {
	query := `
		INSERT INTO user_stats (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username, updated_at = NOW()
	`
	_, err := r.q(q).Exec(ctx, query, userID, username)
	if err != nil {
		return fmt.Errorf("ошибка создания записи пользователя: %w", err)
	}
	return nil
}

// GetByUserID возвращает запись пользователя.
// Если записи нет — common.ErrNoRecord.
func (r *Repository) GetByUserID(ctx context.Context, q postgres.Querier, userID int64) (*UserStats, error) {
	query := `SELECT ` + userStatsColumns + ` FROM user_stats WHERE user_id = $1`
	u, err := scanUserStats(r.q(q).QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNoRecord
		}
		return nil, fmt.Errorf("ошибка чтения user_stats (user_id=%d): %w", userID, err)
	}
	return u, nil
}

// GetForUpdate читает запись с блокировкой строки (FOR UPDATE).
// Используется внутри транзакции действия: двойная отправка и гонка
// со свипером сериализуются на этой блокировке.
func (r *Repository) GetForUpdate(ctx context.Context, q postgres.Querier, userID int64) (*UserStats, error) {
	query := `SELECT ` + userStatsColumns + ` FROM user_stats WHERE user_id = $1 FOR UPDATE`
	u, err := scanUserStats(r.q(q).QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNoRecord
		}
		return nil, fmt.Errorf("ошибка блокировки user_stats (user_id=%d): %w", userID, err)
	}
	return u, nil
}

// Save записывает все изменяемые поля записи обратно в БД.
func (r *Repository) Save(ctx context.Context, q postgres.Querier, u *UserStats) error {
	query := `
		UPDATE user_stats
		SET username = $2, last_action = $3, total_actions = $4,
		    current_streak = $5, max_streak = $6, break_notified = $7,
		    xp = $8, coins = $9, rating = $10, wins = $11, losses = $12,
		    daily_streak = $13, last_daily = $14, profile_status = $15,
		    equipped_title = $16, pet_name = $17,
		    last_broken_streak = $18, recovery_available = $19,
		    recovery_stored = $20, recovery_expires = $21,
		    updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.q(q).Exec(ctx, query,
		u.UserID, u.Username, u.LastAction, u.TotalActions,
		u.CurrentStreak, u.MaxStreak, u.BreakNotified,
		u.XP, u.Coins, u.Rating, u.Wins, u.Losses,
		u.DailyStreak, u.LastDaily, u.ProfileStatus,
		u.EquippedTitle, u.PetName,
		u.LastBrokenStreak, u.RecoveryAvailable, u.RecoveryStored, u.RecoveryExpires,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения user_stats: %w", err)
	}
	return nil
}

// SetStatus обновляет текст статуса профиля.
func (r *Repository) SetStatus(ctx context.Context, userID int64, status string) error {
	query := `UPDATE user_stats SET profile_status = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, status)
	return err
}

// SetPetName обновляет имя питомца.
func (r *Repository) SetPetName(ctx context.Context, userID int64, petName string) error {
	query := `UPDATE user_stats SET pet_name = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, petName)
	return err
}

// SetEquippedTitle устанавливает надетый титул (nil — снять).
func (r *Repository) SetEquippedTitle(ctx context.Context, userID int64, title *string) error {
	query := `UPDATE user_stats SET equipped_title = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, title)
	return err
}

// topQuery выполняет ограниченную выборку топ-N по заданной сортировке.
func (r *Repository) topQuery(ctx context.Context, orderBy string, limit int) ([]*UserStats, error) {
	query := `SELECT ` + userStatsColumns + ` FROM user_stats ORDER BY ` + orderBy + ` LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки топа: %w", err)
	}
	defer rows.Close()

	var out []*UserStats
	for rows.Next() {
		u, err := scanUserStats(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// TopByStreak возвращает топ-N по текущей серии
// (при равенстве — по рекорду, затем по общему количеству).
func (r *Repository) TopByStreak(ctx context.Context, limit int) ([]*UserStats, error) {
	return r.topQuery(ctx, "current_streak DESC, max_streak DESC, total_actions DESC", limit)
}

// TopByXP возвращает топ-N по опыту.
func (r *Repository) TopByXP(ctx context.Context, limit int) ([]*UserStats, error) {
	return r.topQuery(ctx, "xp DESC", limit)
}

// TopByRating возвращает топ-N по рейтингу.
func (r *Repository) TopByRating(ctx context.Context, limit int) ([]*UserStats, error) {
	return r.topQuery(ctx, "rating DESC", limit)
}

// BreakCandidates возвращает записи, которые свипер должен проверить:
// есть серия, есть время последнего действия, уведомление ещё не слали.
func (r *Repository) BreakCandidates(ctx context.Context) ([]*UserStats, error) {
	query := `
		SELECT ` + userStatsColumns + `
		FROM user_stats
		WHERE current_streak > 0 AND last_action IS NOT NULL AND NOT break_notified
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки кандидатов на обрыв: %w", err)
	}
	defer rows.Close()

	var out []*UserStats
	for rows.Next() {
		u, err := scanUserStats(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// MarkBroken обнуляет серию, если обрыв всё ещё актуален на момент записи.
// Предикат обрыва повторён в самом UPDATE: действие, закоммиченное между
// выборкой кандидатов и этим вызовом, сдвигает last_action вперёд и
// превращает UPDATE в no-op вместо затирания свежей серии.
// Возвращает true, если серию сбросил именно этот вызов.
func (r *Repository) MarkBroken(ctx context.Context, userID int64, cutoff time.Time) (bool, error) {
	query := `
		UPDATE user_stats
		SET current_streak = 0, break_notified = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND current_streak > 0 AND NOT break_notified
		  AND last_action < $2
	`
	tag, err := r.db.Exec(ctx, query, userID, cutoff)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// AllUserIDs возвращает идентификаторы всех известных пользователей.
// Используется для рассылки.
func (r *Repository) AllUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM user_stats ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки пользователей: %w", err)
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
