package economy

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPendingCoins(t *testing.T) {
	cases := []struct {
		name         string
		lastRewardAt int64
		now          int64
		rates        []int64
		want         int64
	}{
		{"минута на трёх стартовых картах", 1000, 1060, []int64{1, 1, 1}, 180},
		{"нулевой интервал", 1000, 1000, []int64{5}, 0},
		{"время назад — без начислений", 1000, 900, []int64{5}, 0},
		{"пустая колода", 1000, 2000, nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PendingCoins(c.lastRewardAt, c.now, c.rates); got != c.want {
				t.Errorf("PendingCoins = %d, ожидалось %d", got, c.want)
			}
		})
	}
}

func TestPendingCoinsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Начисление = прошедшие секунды x суммарная производительность
	properties.Property("линейно по времени и сумме ставок", prop.ForAll(
		func(last, dt, r1, r2, r3 int64) bool {
			got := PendingCoins(last, last+dt, []int64{r1, r2, r3})
			return got == dt*(r1+r2+r3)
		},
		gen.Int64Range(0, 1<<40),
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 1000),
		gen.Int64Range(0, 1000),
	))

	// Начисление никогда не отрицательно, даже при часах, ушедших назад
	properties.Property("не бывает отрицательным", prop.ForAll(
		func(last, now, r int64) bool {
			return PendingCoins(last, now, []int64{r}) >= 0
		},
		gen.Int64Range(0, 1<<40),
		gen.Int64Range(0, 1<<40),
		gen.Int64Range(0, 1000),
	))

	properties.TestingRun(t)
}
