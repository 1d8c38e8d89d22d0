// Package daily реализует движок ежедневного ритуала: право на действие,
// непрерывность серии, награды, дневной квест и восстановление.
// models.go описывает результат попытки и решение о непрерывности.
package daily

import (
	"time"

	"bratva.chat/telegram-bot/internal/common"
	"bratva.chat/telegram-bot/internal/features/achievements"
)

// Код дневного квеста «сделай ежедневку».
const QuestCode = "daily_ritual"

// Outcome — результат одной попытки ритуала.
// Performed=false означает штатный отказ «сегодня уже сделано»,
// тогда заполнено только UntilMidnight.
type Outcome struct {
	Performed     bool
	UntilMidnight time.Duration

	Streak      int
	MaxStreak   int
	Total       int
	XPGained    int
	CoinsGained int64
	QuestDone   bool

	// BrokeStreak=true — перед этим действием серия была обнулена
	// (льготное окно превышено). SnapshotSaved — размер сохранённого
	// снимка для восстановления, 0 если серия была мала.
	BrokeStreak   bool
	SnapshotSaved int

	Unlocked []achievements.Unlock
}

// continuityDecision — решение о непрерывности серии перед действием.
// Суточная граница («можно ли сегодня») проверяется отдельно:
// это два независимых вопроса.
type continuityDecision struct {
	Broke    bool // льготное окно превышено, серия обнуляется
	Snapshot int  // размер снимка для восстановления (0 — серия ниже минимума)
}

// sweepCutoff возвращает границу для SQL-предиката сброса:
// last_action < cutoff ⇔ StreakBroken(now, last_action, graceHours).
// Свипер передаёт её в условный UPDATE, чтобы действие, закоммиченное
// после выборки кандидатов, не было затёрто.
func sweepCutoff(now time.Time, graceHours int) time.Time {
	return now.Add(-time.Duration(graceHours) * time.Hour)
}

// decideContinuity решает, пережила ли серия паузу между действиями.
// Первое действие в жизни — всегда продолжение (серия начнётся с 1).
func decideContinuity(now time.Time, lastAction *time.Time, currentStreak, graceHours, recoveryMin int) continuityDecision {
	if lastAction == nil {
		return continuityDecision{}
	}
	if !common.StreakBroken(now, *lastAction, graceHours) {
		return continuityDecision{}
	}
	d := continuityDecision{Broke: true}
	if currentStreak >= recoveryMin {
		d.Snapshot = currentStreak
	}
	return d
}
