// Package common — pluralize.go содержит склонение русских числительных
// для всех сообщений бота.
package common

import (
	"fmt"
	"math"
)

// pluralForm выбирает форму слова по правилам русского языка:
//   - n%10==1 И n%100!=11 → единственное (1, 21, 101, ...)
//   - n%10 в [2,4] И n%100 НЕ в [12,14] → малое множественное (2, 3, 23, ...)
//   - остальное → большое множественное (0, 5-20, 111, ...)
func pluralForm(n int64, one, few, many string) string {
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeDays возвращает правильную форму слова «день».
// Примеры: 1 → "день", 3 → "дня", 11 → "дней", 21 → "день".
func PluralizeDays(n int) string {
	return pluralForm(int64(n), "день", "дня", "дней")
}

// PluralizeCoins возвращает правильную форму слова «монета».
func PluralizeCoins(n int64) string {
	return pluralForm(n, "монета", "монеты", "монет")
}

// PluralizeTimes возвращает форму слова «раз» (1 раз, 2 раза, 5 раз).
func PluralizeTimes(n int) string {
	return pluralForm(int64(n), "раз", "раза", "раз")
}

// FormatCoins форматирует сумму в читабельную строку.
// Пример: FormatCoins(3) → "3 монеты".
func FormatCoins(n int64) string {
	return fmt.Sprintf("%d %s", n, PluralizeCoins(n))
}

// FormatCoinsAmount создаёт строку вида "+5 монет" или "-2 монеты".
func FormatCoinsAmount(amount int64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%d %s", amount, PluralizeCoins(amount))
	}
	return fmt.Sprintf("%d %s", amount, PluralizeCoins(amount))
}
