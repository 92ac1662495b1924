package item

import (
	"context"
	"errors"
	"testing"

	"serotonyl.ru/idle-game/internal/common"
)

// Запросы на усиление с пустым списком или неположительными количествами
// отклоняются до любых обращений к базе: отрицательное количество
// эмитировало бы материал из ничего и снижало бы опыт карты.
func TestEnhanceRejectsInvalidMaterialRequests(t *testing.T) {
	s := &Service{}
	ctx := context.Background()

	cases := []struct {
		name      string
		materials []ConsumeRequest
	}{
		{"пустой список материалов", nil},
		{"нулевое количество", []ConsumeRequest{{ID: 1, Amount: 0}}},
		{"отрицательное количество", []ConsumeRequest{{ID: 1, Amount: -5}}},
		{"отрицательное среди валидных", []ConsumeRequest{{ID: 1, Amount: 2}, {ID: 2, Amount: -1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := s.Enhance(ctx, 1, 2, c.materials, "token", "viewer", 1000)
			if !errors.Is(err, common.ErrInvalidInput) {
				t.Errorf("ожидалась ErrInvalidInput, получено %v", err)
			}
		})
	}
}
