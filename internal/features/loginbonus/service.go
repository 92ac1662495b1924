// Package loginbonus — service.go: продвижение по календарям бонусов.
package loginbonus

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/features/master"
	"serotonyl.ru/idle-game/internal/idgen"
)

// Service продвигает игрока по активным бонусным программам.
type Service struct {
	repo    *Repository
	master  *master.Repository
	grantor *item.Service
	idgen   *idgen.Generator
}

// NewService создаёт сервис логин-бонусов.
func NewService(repo *Repository, m *master.Repository, grantor *item.Service, gen *idgen.Generator) *Service {
	return &Service{repo: repo, master: m, grantor: grantor, idgen: gen}
}

// Advance выполняется при первом входе игрока за календарные сутки:
// по каждой активной программе продвигает прогресс на одну клетку
// и выдаёт награду этой клетки. Завершённые незацикленные программы
// пропускаются. Работает внутри транзакции вызывающего.
func (s *Service) Advance(ctx context.Context, q postgres.Querier, playerID, now int64, res *item.GrantResult) ([]*Progress, error) {
	bonuses, err := s.master.ListActiveLoginBonuses(ctx, q, now)
	if err != nil {
		return nil, err
	}

	var advanced []*Progress
	for _, b := range bonuses {
		p, err := s.repo.Get(ctx, q, playerID, b.ID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Первый вход в программу: сразу первая клетка
			id, err := s.idgen.Next(ctx)
			if err != nil {
				return nil, err
			}
			p = &Progress{
				ID:                 id,
				PlayerID:           playerID,
				LoginBonusID:       b.ID,
				LastRewardSequence: 0,
				LoopCount:          1,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if err := s.repo.Insert(ctx, q, p); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		}

		if p.LastRewardSequence < b.ColumnCount {
			p.LastRewardSequence++
		} else if b.Looped {
			p.LoopCount++
			p.LastRewardSequence = 1
		} else {
			// Календарь пройден и не зацикливается
			continue
		}
		p.UpdatedAt = now

		reward, err := s.master.GetLoginBonusReward(ctx, q, b.ID, p.LastRewardSequence)
		if err != nil {
			// Дырка в мастер-данных: программу с невыдаваемой клеткой
			// выдавать нельзя, вся операция откатывается
			return nil, fmt.Errorf("логин-бонус %d, клетка %d: %w", b.ID, p.LastRewardSequence, err)
		}

		if err := s.grantor.Grant(ctx, q, playerID, reward.ItemID, reward.ItemType, reward.Amount, now, res); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, q, p); err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"player_id":      playerID,
			"login_bonus_id": b.ID,
			"sequence":       p.LastRewardSequence,
			"loop":           p.LoopCount,
		}).Debug("Выдан логин-бонус")

		advanced = append(advanced, p)
	}
	return advanced, nil
}
