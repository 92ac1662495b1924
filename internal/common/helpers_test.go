package common

import (
	"testing"
	"time"
)

func TestReferenceLocationFallback(t *testing.T) {
	loc := ReferenceLocation("No/Such_Zone")
	_, offset := time.Now().In(loc).Zone()
	if offset != 9*60*60 {
		t.Errorf("смещение запасного пояса %d, ожидалось +9 часов", offset)
	}
}

// Граница игрового дня — полночь опорного пояса (+09:00), то есть
// 15:00 UTC предыдущих суток.
func TestSameCalendarDayBoundary(t *testing.T) {
	loc := ReferenceLocation("Asia/Tokyo")

	before := time.Date(2024, 6, 1, 14, 59, 59, 0, time.UTC).Unix() // 23:59:59 JST
	after := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC).Unix()    // 00:00:00 JST следующего дня

	if !SameCalendarDay(before, before, loc) {
		t.Error("момент не совпал сам с собой")
	}
	if SameCalendarDay(before, after, loc) {
		t.Error("секунды по разные стороны полуночи JST попали в один день")
	}
	if !SameCalendarDay(after, after+86399, loc) {
		t.Error("начало и конец одних суток JST не совпали")
	}
}

func TestDayStart(t *testing.T) {
	loc := ReferenceLocation("Asia/Tokyo")
	noon := time.Date(2024, 6, 2, 12, 0, 0, 0, loc)
	want := time.Date(2024, 6, 2, 0, 0, 0, 0, loc).Unix()
	if got := DayStart(noon.Unix(), loc); got != want {
		t.Errorf("DayStart = %d, ожидалось %d", got, want)
	}
}
