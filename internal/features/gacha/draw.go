// Package gacha — платные розыгрыши со взвешенными пулами.
// draw.go содержит чистую механику выбора призов.
package gacha

import (
	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/features/master"
)

// TotalWeight суммирует веса пула.
func TotalWeight(pool []*master.GachaPoolEntry) int64 {
	var total int64
	for _, e := range pool {
		total += e.Weight
	}
	return total
}

// DrawFromPool разыгрывает count призов из пула. Каждый розыгрыш
// независим: бросок в [0, totalWeight) и проход пула в порядке
// возрастания id с накоплением весов — выпадает первая запись,
// накопленный вес которой превышает бросок. Порядок прохода
// фиксирован, иначе одинаковые броски давали бы разные призы.
// intn — источник случайности (подменяется в тестах).
func DrawFromPool(pool []*master.GachaPoolEntry, count int, intn func(int64) int64) ([]*master.GachaPoolEntry, error) {
	total := TotalWeight(pool)
	if total <= 0 {
		return nil, common.ErrGachaPoolEmpty
	}

	prizes := make([]*master.GachaPoolEntry, 0, count)
	for i := 0; i < count; i++ {
		roll := intn(total)
		var acc int64
		for _, e := range pool {
			acc += e.Weight
			if roll < acc {
				prizes = append(prizes, e)
				break
			}
		}
	}
	return prizes, nil
}
