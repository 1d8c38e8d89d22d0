// Package common — clock.go содержит часы приложения.
// Вся календарная логика (суточные границы, ключи недель) считается
// в одной таймзоне, какой бы ни была таймзона сервера.
package common

import (
	"fmt"
	"time"
)

// Clock — часы приложения с фиксированной таймзоной.
// nowFunc подменяется в тестах.
type Clock struct {
	loc     *time.Location
	nowFunc func() time.Time
}

// NewClock создаёт часы в указанной таймзоне. Если таймзону загрузить
// не удалось, возвращает часы на запасной зоне EET вместе с ошибкой:
// бот должен жить даже на голом контейнере без tzdata.
func NewClock(tzName string) (*Clock, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		fallback := time.FixedZone("EET", 2*60*60)
		return &Clock{loc: fallback, nowFunc: time.Now},
			fmt.Errorf("не удалось загрузить таймзону %q: %w", tzName, err)
	}
	return &Clock{loc: loc, nowFunc: time.Now}, nil
}

// NewClockAt создаёт часы с фиксированным «сейчас» — для тестов.
func NewClockAt(loc *time.Location, now time.Time) *Clock {
	return &Clock{loc: loc, nowFunc: func() time.Time { return now }}
}

// Location возвращает таймзону часов.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now возвращает текущее время в таймзоне часов.
func (c *Clock) Now() time.Time {
	return c.nowFunc().In(c.loc)
}

// Today возвращает полночь текущего дня.
func (c *Clock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// DayKey возвращает ключ календарного дня вида "2006-01-02".
// Две метки времени относятся к одному дню тогда и только тогда,
// когда их ключи равны.
func (c *Clock) DayKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// TodayKey возвращает ключ сегодняшнего дня.
func (c *Clock) TodayKey() string {
	return c.DayKey(c.Now())
}

// UntilMidnight возвращает время до ближайшей полуночи.
func (c *Clock) UntilMidnight() time.Duration {
	return c.Today().AddDate(0, 0, 1).Sub(c.Now())
}

// WeekKey возвращает ключ ISO-недели вида "2026-W35".
func (c *Clock) WeekKey() string {
	year, week := c.Now().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StreakBroken сообщает, пережила ли серия паузу между действиями:
// true, если с последнего действия прошло больше льготного окна.
// Единственное место с этим предикатом — им пользуются и путь действия,
// и свипер.
func StreakBroken(now, lastAction time.Time, graceHours int) bool {
	return now.Sub(lastAction).Hours() > float64(graceHours)
}
