// Package economy — service.go: главный экран и сбор накопленных монет.
package economy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/deck"
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/features/player"
)

// Home — снимок главного экрана: колода (может отсутствовать),
// её карты, суммарная производительность и накопления.
type Home struct {
	Player       *player.Player
	Deck         *deck.Deck
	Cards        []*item.OwnedCard
	TotalRate    int64
	PendingCoins int64
	Elapsed      int64 // секунд с последнего сбора
}

// Service реализует главный экран и сбор монет.
type Service struct {
	db      *pgxpool.Pool
	players *player.Repository
	decks   *deck.Repository
	items   *item.Repository
}

// NewService создаёт сервис экономики.
func NewService(db *pgxpool.Pool, players *player.Repository, decks *deck.Repository, items *item.Repository) *Service {
	return &Service{db: db, players: players, decks: decks, items: items}
}

// deckRates возвращает карты колоды и их производительности.
func (s *Service) deckRates(ctx context.Context, q postgres.Querier, d *deck.Deck) ([]*item.OwnedCard, []int64, error) {
	cards, err := s.items.GetCardsByIDs(ctx, q, d.CardIDs())
	if err != nil {
		return nil, nil, err
	}
	rates := make([]int64, 0, len(cards))
	for _, c := range cards {
		rates = append(rates, c.AmountPerSec)
	}
	return cards, rates, nil
}

// GetHome возвращает снимок главного экрана без изменения состояния.
// Накопления считаются, но не зачисляются.
func (s *Service) GetHome(ctx context.Context, playerID, now int64) (*Home, error) {
	p, err := s.players.Get(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}

	h := &Home{Player: p, Elapsed: now - p.LastRewardAt}

	d, err := s.decks.GetActive(ctx, s.db, playerID)
	if errors.Is(err, common.ErrDeckNotFound) {
		// Без колоды ничего не капает
		return h, nil
	}
	if err != nil {
		return nil, err
	}
	h.Deck = d

	cards, rates, err := s.deckRates(ctx, s.db, d)
	if err != nil {
		return nil, err
	}
	h.Cards = cards
	h.TotalRate = TotalRate(rates)
	h.PendingCoins = PendingCoins(p.LastRewardAt, now, rates)
	return h, nil
}

// Claim зачисляет накопленные монеты и сдвигает точку отсчёта на now.
// Без активной колоды собирать нечего.
func (s *Service) Claim(ctx context.Context, playerID, now int64) (*player.Player, int64, error) {
	var (
		updated *player.Player
		gained  int64
	)
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		p, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		d, err := s.decks.GetActive(ctx, tx, playerID)
		if err != nil {
			return err
		}

		_, rates, err := s.deckRates(ctx, tx, d)
		if err != nil {
			return err
		}

		gained = PendingCoins(p.LastRewardAt, now, rates)
		p.Coin += gained
		p.LastRewardAt = now
		p.UpdatedAt = now
		if err := s.players.UpdateCoinAndRewardAt(ctx, tx, playerID, p.Coin, now); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"gained":    gained,
	}).Info("Собраны накопленные монеты")

	return updated, gained, nil
}
