// Package achievements управляет достижениями и титулами.
// models.go описывает пороги, тексты и связь «достижение → титул».
package achievements

import (
	"fmt"
	"time"
)

// Пороговые значения. Сравнение строго по равенству: достижение
// привязано к конкретному дню серии, счётчики растут только по +1.
var (
	streakThresholds = []int{5, 10, 30, 50, 100, 365}
	totalThresholds  = []int{1000, 5000}
)

// Descriptions — тексты уведомлений о достижениях.
var Descriptions = map[string]string{
	"streak_5":   "🔥 Серия 5! Ты начинаешь привыкать…",
	"streak_10":  "⚡ Серия 10! Ты официально упорный.",
	"streak_30":  "🏆 Серия 30! Легенда без пропусков.",
	"streak_50":  "💪 Серия 50! Полсотни выдержал.",
	"streak_100": "🛡️ Серия 100! Железная дисциплина.",
	"streak_365": "🌍 Серия 365! Целый год без пропусков.",
	"total_1000": "🚀 1000 общих действий! Космос.",
	"total_5000": "🌌 5000 тотал! Ты машина.",
}

// TitleByCode — титулы, которые выдаются вместе с достижением.
var TitleByCode = map[string]string{
	"streak_10":  "Упорный",
	"streak_30":  "Легенда",
	"streak_50":  "Полсотни",
	"streak_100": "Железный",
	"streak_365": "Вечный",
	"total_1000": "Тысячер",
	"total_5000": "ПятиТысячер",
}

// Unlock — только что открытое достижение (для уведомления).
type Unlock struct {
	Code    string
	Message string
	Title   string // пустая строка — титул не привязан
}

// Earned — строка из леджера достижений пользователя.
type Earned struct {
	Code     string
	EarnedAt time.Time
}

// StreakCode возвращает код достижения, если серия точно равна порогу.
func StreakCode(streak int) (string, bool) {
	for _, th := range streakThresholds {
		if streak == th {
			return fmt.Sprintf("streak_%d", th), true
		}
	}
	return "", false
}

// TotalCode возвращает код достижения, если общий счётчик точно равен порогу.
func TotalCode(total int) (string, bool) {
	for _, th := range totalThresholds {
		if total == th {
			return fmt.Sprintf("total_%d", th), true
		}
	}
	return "", false
}
