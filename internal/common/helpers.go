// Package common содержит общие утилиты, используемые во всём проекте.
// helpers.go — работа с опорным часовым поясом и границей игрового дня.
package common

import (
	"time"
)

// ReferenceLocation возвращает опорный часовой пояс игры по имени.
// Все проверки «тот же календарный день» выполняются в нём.
// Если базу поясов загрузить не удалось — используем UTC+9 вручную.
func ReferenceLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// SameCalendarDay сообщает, попадают ли два unix-времени в один
// календарный день опорного пояса. Именно эта проверка делает выдачу
// логин-бонусов и подарков идемпотентной при повторных логинах за день.
func SameCalendarDay(a, b int64, loc *time.Location) bool {
	ta := time.Unix(a, 0).In(loc)
	tb := time.Unix(b, 0).In(loc)
	return ta.Year() == tb.Year() && ta.Month() == tb.Month() && ta.Day() == tb.Day()
}

// DayStart возвращает unix-время полуночи того дня опорного пояса,
// в который попадает t. Используется в обслуживании и тестах.
func DayStart(t int64, loc *time.Location) int64 {
	tt := time.Unix(t, 0).In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc).Unix()
}
