package item

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Кривая с base_exp_per_level = 10: пороги 10, 12, 14, 17, 20...
func TestLevelThreshold(t *testing.T) {
	cases := []struct {
		level int
		want  int64
	}{
		{1, 10},
		{2, 12},
		{3, 14},
		{4, 17},
		{5, 20},
	}
	for _, c := range cases {
		if got := LevelThreshold(10, c.level); got != c.want {
			t.Errorf("LevelThreshold(10, %d) = %d, ожидалось %d", c.level, got, c.want)
		}
	}
}

func TestTotalExpForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int64
	}{
		{1, 0},
		{2, 10},
		{3, 22},
		{4, 36},
	}
	for _, c := range cases {
		if got := TotalExpForLevel(10, c.level); got != c.want {
			t.Errorf("TotalExpForLevel(10, %d) = %d, ожидалось %d", c.level, got, c.want)
		}
	}
}

func newTestCard(totalExp int64) *cardWithTemplate {
	return &cardWithTemplate{
		OwnedCard: OwnedCard{
			AmountPerSec: 1,
			Level:        1,
			TotalExp:     totalExp,
		},
		BaseAmountPerSec: 1,
		MaxLevel:         50,
		MaxAmountPerSec:  50,
		BaseExpPerLevel:  10,
	}
}

func TestApplyLevelUps(t *testing.T) {
	cases := []struct {
		name      string
		totalExp  int64
		wantLevel int
		wantRate  int64
	}{
		{"без опыта уровень не растёт", 0, 1, 1},
		{"ровно порог второго уровня", 10, 2, 2},
		{"на единицу меньше третьего уровня", 21, 2, 2},
		{"ровно порог третьего уровня", 22, 3, 3},
		{"несколько уровней за раз", 36, 4, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			card := newTestCard(c.totalExp)
			applyLevelUps(card)
			if card.Level != c.wantLevel {
				t.Errorf("уровень = %d, ожидалось %d", card.Level, c.wantLevel)
			}
			if card.AmountPerSec != c.wantRate {
				t.Errorf("производительность = %d, ожидалось %d", card.AmountPerSec, c.wantRate)
			}
		})
	}
}

func TestApplyLevelUpsCapsAtMaxLevel(t *testing.T) {
	card := newTestCard(1 << 40) // заведомо больше суммы всех порогов
	applyLevelUps(card)
	if card.Level != 50 {
		t.Errorf("уровень = %d, ожидалось 50 (предел шаблона)", card.Level)
	}
	if card.AmountPerSec != 50 {
		t.Errorf("производительность = %d, ожидалось 50", card.AmountPerSec)
	}
}

func TestLevelingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Больше опыта никогда не даёт меньший уровень
	properties.Property("уровень монотонен по опыту", prop.ForAll(
		func(base int64, expA, expB int64) bool {
			if expA > expB {
				expA, expB = expB, expA
			}
			a := newTestCard(expA)
			b := newTestCard(expB)
			a.BaseExpPerLevel = base
			b.BaseExpPerLevel = base
			applyLevelUps(a)
			applyLevelUps(b)
			return a.Level <= b.Level
		},
		gen.Int64Range(1, 1000),
		gen.Int64Range(0, 1_000_000),
		gen.Int64Range(0, 1_000_000),
	))

	// Уровень никогда не превышает предел шаблона
	properties.Property("уровень не выше max_level", prop.ForAll(
		func(base, exp int64, maxLevel int) bool {
			c := newTestCard(exp)
			c.BaseExpPerLevel = base
			c.MaxLevel = maxLevel
			c.MaxAmountPerSec = int64(maxLevel)
			applyLevelUps(c)
			return c.Level >= 1 && c.Level <= maxLevel
		},
		gen.Int64Range(1, 1000),
		gen.Int64Range(0, 1_000_000),
		gen.IntRange(2, 100),
	))

	// Достигнутый уровень всегда «оплачен» накопленным опытом
	properties.Property("накопленный опыт покрывает уровень", prop.ForAll(
		func(base, exp int64) bool {
			c := newTestCard(exp)
			c.BaseExpPerLevel = base
			applyLevelUps(c)
			return TotalExpForLevel(base, c.Level) <= c.TotalExp
		},
		gen.Int64Range(1, 1000),
		gen.Int64Range(0, 1_000_000),
	))

	properties.TestingRun(t)
}
