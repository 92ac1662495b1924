package gacha

import (
	"errors"
	"math/rand"
	"testing"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/features/master"
)

func testPool(weights ...int64) []*master.GachaPoolEntry {
	pool := make([]*master.GachaPoolEntry, 0, len(weights))
	for i, w := range weights {
		pool = append(pool, &master.GachaPoolEntry{
			ID:       int64(i + 1),
			GachaID:  1,
			ItemType: master.ItemTypeEnhanceMaterial,
			ItemID:   3,
			Amount:   1,
			Weight:   w,
		})
	}
	return pool
}

func TestDrawFromPoolEmptyPool(t *testing.T) {
	_, err := DrawFromPool(nil, 1, rand.Int63n)
	if !errors.Is(err, common.ErrGachaPoolEmpty) {
		t.Fatalf("ожидалась ErrGachaPoolEmpty, получено %v", err)
	}

	// Нулевые веса равнозначны пустому пулу
	_, err = DrawFromPool(testPool(0, 0), 1, rand.Int63n)
	if !errors.Is(err, common.ErrGachaPoolEmpty) {
		t.Fatalf("ожидалась ErrGachaPoolEmpty при нулевых весах, получено %v", err)
	}
}

func TestDrawFromPoolCount(t *testing.T) {
	pool := testPool(1, 1, 8)
	for _, count := range []int{1, 10} {
		prizes, err := DrawFromPool(pool, count, rand.New(rand.NewSource(1)).Int63n)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if len(prizes) != count {
			t.Errorf("выпало %d призов, ожидалось %d", len(prizes), count)
		}
	}
}

// Фиксированные броски однозначно определяют приз: обход пула идёт
// по возрастанию id с накоплением весов.
func TestDrawFromPoolWalkOrder(t *testing.T) {
	pool := testPool(1, 1, 8) // кумулятивные границы: 1, 2, 10
	cases := []struct {
		roll   int64
		wantID int64
	}{
		{0, 1},
		{1, 2},
		{2, 3},
		{9, 3},
	}
	for _, c := range cases {
		prizes, err := DrawFromPool(pool, 1, func(int64) int64 { return c.roll })
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		if prizes[0].ID != c.wantID {
			t.Errorf("бросок %d: выпал id %d, ожидался %d", c.roll, prizes[0].ID, c.wantID)
		}
	}
}

// Частоты выпадений сходятся к весам: при весах 1:1:8 третья запись
// должна выпадать примерно в 80% розыгрышей.
func TestDrawFromPoolConvergence(t *testing.T) {
	pool := testPool(1, 1, 8)
	rng := rand.New(rand.NewSource(42))

	const draws = 100_000
	counts := make(map[int64]int)
	for i := 0; i < draws; i++ {
		prizes, err := DrawFromPool(pool, 1, rng.Int63n)
		if err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
		counts[prizes[0].ID]++
	}

	heavy := float64(counts[3]) / draws
	if heavy < 0.78 || heavy > 0.82 {
		t.Errorf("доля тяжёлой записи %.4f, ожидалось около 0.80", heavy)
	}
	light := float64(counts[1]) / draws
	if light < 0.08 || light > 0.12 {
		t.Errorf("доля лёгкой записи %.4f, ожидалось около 0.10", light)
	}
}

func TestTotalWeight(t *testing.T) {
	if got := TotalWeight(testPool(1, 1, 8)); got != 10 {
		t.Errorf("TotalWeight = %d, ожидалось 10", got)
	}
	if got := TotalWeight(nil); got != 0 {
		t.Errorf("TotalWeight(nil) = %d, ожидалось 0", got)
	}
}
