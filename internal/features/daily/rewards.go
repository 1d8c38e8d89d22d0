// Package daily — rewards.go содержит расчёт наград за ритуал.
package daily

// Бонус за дневной квест (разово в день, поверх наград за серию).
const (
	QuestXPBonus   = 2
	QuestCoinBonus = 1
)

// XPForStreak возвращает опыт за действие на данной позиции серии.
// Каждый десятый день подряд — усиленный бонус (3 вместо 1, не суммируется).
func XPForStreak(streak int) int {
	if streak%10 == 0 {
		return 3
	}
	return 1
}

// CoinsForStreak возвращает монеты за действие на данной позиции серии.
// Выплата только на каждом седьмом дне и растёт с каждым циклом:
// 7 → 1, 14 → 2, 21 → 3, ...
func CoinsForStreak(streak int) int64 {
	if streak <= 0 || streak%7 != 0 {
		return 0
	}
	mult := streak / 7
	if mult < 1 {
		mult = 1
	}
	return int64(mult)
}
