// Package month содержит календарную арифметику для сроков членства.
package month

import (
	"time"
)

// AddMonths прибавляет к дате заданное число календарных месяцев.
//
// В отличие от time.AddDate, день месяца ограничивается последним днём
// целевого месяца: 31 января + 1 месяц = 28 (29) февраля, а не 2 (3) марта.
// Это правило переполнения используется при расчёте даты окончания членства.
func AddMonths(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	m := time.Month(total%12 + 1)

	day := t.Day()
	if last := lastDay(year, m); day > last {
		day = last
	}
	return time.Date(year, m, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// lastDay возвращает число дней в месяце: день "0" следующего месяца.
func lastDay(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
