// Package profile управляет единой записью пользователя (user_stats):
// стрики, опыт, монеты, рейтинг, статус и поля восстановления серии.
// models.go описывает структуру данных записи.
package profile

import (
	"math"
	"time"
)

// UserStats представляет одну строку user_stats — всё состояние пользователя.
// Запись создаётся лениво при первом обращении и никогда не удаляется.
type UserStats struct {
	ID            int64      `db:"id"`
	UserID        int64      `db:"user_id"`
	Username      string     `db:"username"`
	LastAction    *time.Time `db:"last_action"`    // Время последнего ритуала (nil — ещё не делал)
	TotalActions  int        `db:"total_actions"`  // Всего выполнено за всё время
	CurrentStreak int        `db:"current_streak"` // Текущая серия (дней подряд)
	MaxStreak     int        `db:"max_streak"`     // Личный рекорд
	BreakNotified bool       `db:"break_notified"` // Уведомление о сломанной серии уже отправлено?
	XP            int        `db:"xp"`
	Coins         int64      `db:"coins"`
	Rating        int        `db:"rating"` // ELO-рейтинг мини-игр
	Wins          int        `db:"wins"`
	Losses        int        `db:"losses"`
	DailyStreak   int        `db:"daily_streak"` // Серия выполненных дневных квестов
	LastDaily     *time.Time `db:"last_daily"`
	ProfileStatus string     `db:"profile_status"`
	EquippedTitle *string    `db:"equipped_title"` // Надетый титул (ссылка на user_titles)
	PetName       *string    `db:"pet_name"`

	// Снимок для восстановления серии: создаётся при обнаружении обрыва,
	// расходуется максимум один раз, истекает по recovery_expires.
	LastBrokenStreak  int        `db:"last_broken_streak"`
	RecoveryAvailable bool       `db:"recovery_available"`
	RecoveryStored    int        `db:"recovery_stored"`
	RecoveryExpires   *time.Time `db:"recovery_expires"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Level вычисляет уровень из опыта: floor(sqrt(xp/10)).
// 10 XP → 1 уровень, 40 XP → 2, 90 XP → 3 и так далее.
func Level(xp int) int {
	if xp <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(xp) / 10))
}
