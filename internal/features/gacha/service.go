// Package gacha — service.go: витрина розыгрышей и сам розыгрыш.
package gacha

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/config"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/master"
	"serotonyl.ru/idle-game/internal/features/player"
	"serotonyl.ru/idle-game/internal/features/present"
	"serotonyl.ru/idle-game/internal/features/token"
)

// Showcase — витрина: активные розыгрыши с пулами и свежий токен.
type Showcase struct {
	Token  *token.OneTimeToken
	Gachas []*GachaWithPool
}

// GachaWithPool — определение розыгрыша вместе с его пулом призов.
type GachaWithPool struct {
	Gacha *master.GachaDefinition
	Pool  []*master.GachaPoolEntry
}

// Service реализует розыгрыши.
type Service struct {
	db       *pgxpool.Pool
	master   *master.Repository
	players  *player.Repository
	presents *present.Service
	tokens   *token.Service
	cfg      *config.Config
	intn     func(int64) int64 // источник случайности
}

// NewService создаёт сервис розыгрышей.
func NewService(db *pgxpool.Pool, m *master.Repository, players *player.Repository, presents *present.Service, tokens *token.Service, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		master:   m,
		players:  players,
		presents: presents,
		tokens:   tokens,
		cfg:      cfg,
		intn:     rand.Int63n,
	}
}

// List возвращает витрину активных розыгрышей (в порядке показа)
// и выдаёт игроку одноразовый токен розыгрыша.
func (s *Service) List(ctx context.Context, playerID, now int64) (*Showcase, error) {
	sc := &Showcase{}
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		gachas, err := s.master.ListActiveGachas(ctx, tx, now)
		if err != nil {
			return err
		}

		for _, g := range gachas {
			pool, err := s.master.ListGachaPool(ctx, tx, g.ID)
			if err != nil {
				return err
			}
			if len(pool) == 0 {
				return common.ErrGachaPoolEmpty
			}
			sc.Gachas = append(sc.Gachas, &GachaWithPool{Gacha: g, Pool: pool})
		}

		t, err := s.tokens.Issue(ctx, tx, playerID, token.TypeGacha, now)
		if err != nil {
			return err
		}
		sc.Token = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Draw разыгрывает count призов (1 или 10) за count x стоимость розыгрыша.
// Призы не выдаются сразу, а кладутся подарками в ящик. Токен, списание
// монет и подарки — одна транзакция.
func (s *Service) Draw(ctx context.Context, playerID, gachaID int64, count int, tokenValue, viewerID string, now int64) ([]*present.Present, error) {
	if count != 1 && count != 10 {
		return nil, common.ErrInvalidDrawCount
	}
	cost := int64(count) * s.cfg.GachaDrawCost

	var delivered []*present.Present
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.tokens.Consume(ctx, tx, tokenValue, token.TypeGacha, now); err != nil {
			return err
		}

		if _, err := s.players.GetDevice(ctx, tx, playerID, viewerID); err != nil {
			return err
		}

		p, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}
		if p.Coin < cost {
			return common.ErrInsufficientCoin
		}

		g, err := s.master.GetActiveGacha(ctx, tx, gachaID, now)
		if err != nil {
			return err
		}
		pool, err := s.master.ListGachaPool(ctx, tx, g.ID)
		if err != nil {
			return err
		}

		prizes, err := DrawFromPool(pool, count, s.intn)
		if err != nil {
			return err
		}

		message := fmt.Sprintf("Reward from %s", g.Name)
		for _, prize := range prizes {
			d, err := s.presents.Deliver(ctx, tx, playerID, prize.ItemType, prize.ItemID, prize.Amount, message, now)
			if err != nil {
				return err
			}
			delivered = append(delivered, d)
		}

		return s.players.UpdateCoin(ctx, tx, playerID, p.Coin-cost, now)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"gacha_id":  gachaID,
		"count":     count,
		"cost":      cost,
	}).Info("Выполнен розыгрыш")

	return delivered, nil
}
