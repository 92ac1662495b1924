// Package item — leveling.go: детерминированная математика уровней.
// Кривая геометрическая (x1.2 за уровень), значения усечены до целых.
// Эти функции обязаны давать бит-в-бит одинаковые результаты на всех
// инсталляциях — от них зависит совместимость сохранений.
package item

import "math"

// LevelThreshold возвращает стоимость перехода level -> level+1 в опыте:
// trunc(baseExpPerLevel * 1.2^(level-1)). Для level=1 это ровно
// baseExpPerLevel (1.2^0 == 1, произведение целое).
func LevelThreshold(baseExpPerLevel int64, level int) int64 {
	return int64(float64(baseExpPerLevel) * math.Pow(1.2, float64(level-1)))
}

// TotalExpForLevel возвращает суммарный опыт, необходимый чтобы
// НАХОДИТЬСЯ на уровне level: сумма порогов уровней 1..level-1.
// Для level=1 это 0.
func TotalExpForLevel(baseExpPerLevel int64, level int) int64 {
	var total int64
	for l := 1; l < level; l++ {
		total += LevelThreshold(baseExpPerLevel, l)
	}
	return total
}

// rateStepPerLevel — прирост производительности за уровень:
// линейная интерполяция от базовой до максимальной по всем уровням.
func rateStepPerLevel(baseRate, maxRate int64, maxLevel int) int64 {
	return (maxRate - baseRate) / int64(maxLevel-1)
}

// applyLevelUps поднимает уровень карты, пока накопленного опыта хватает
// на следующий уровень и не достигнут предел шаблона.
// Модифицирует Level и AmountPerSec на месте; TotalExp не трогает.
func applyLevelUps(c *cardWithTemplate) {
	step := rateStepPerLevel(c.BaseAmountPerSec, c.MaxAmountPerSec, c.MaxLevel)
	for c.Level < c.MaxLevel && TotalExpForLevel(c.BaseExpPerLevel, c.Level+1) <= c.TotalExp {
		c.Level++
		c.AmountPerSec += step
	}
}
