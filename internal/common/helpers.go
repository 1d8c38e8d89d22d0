// Package common содержит общие утилиты, используемые во всём проекте:
// календарные часы, склонение числительных, форматирование чисел и дат.
package common

import (
	"fmt"
	"time"
)

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется в статистике для даты последнего действия.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	rest := n / 1000
	last := n % 1000
	return fmt.Sprintf("%s %03d", FormatNumber(rest), last)
}
