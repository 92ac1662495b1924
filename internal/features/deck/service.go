// Package deck — service.go: замена активной колоды.
package deck

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/idgen"
)

// deckSize — число слотов в колоде.
const deckSize = 3

// Service управляет колодами.
type Service struct {
	db    *pgxpool.Pool
	repo  *Repository
	items *item.Repository
	idgen *idgen.Generator
}

// NewService создаёт сервис колод.
func NewService(db *pgxpool.Pool, repo *Repository, items *item.Repository, gen *idgen.Generator) *Service {
	return &Service{db: db, repo: repo, items: items, idgen: gen}
}

// Replace атомарно заменяет колоду игрока на перечисленные карты.
// Требуется ровно три карты, все должны принадлежать игроку.
func (s *Service) Replace(ctx context.Context, playerID int64, cardIDs []int64, now int64) (*Deck, error) {
	if len(cardIDs) != deckSize {
		return nil, common.ErrInvalidInput
	}

	var created *Deck
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		owned, err := s.items.CountOwnedCards(ctx, tx, playerID, cardIDs)
		if err != nil {
			return err
		}
		if owned != deckSize {
			return common.ErrCardNotFound
		}

		if err := s.repo.SoftDeleteActive(ctx, tx, playerID, now); err != nil {
			return err
		}

		id, err := s.idgen.Next(ctx)
		if err != nil {
			return err
		}
		d := &Deck{
			ID:        id,
			PlayerID:  playerID,
			CardID1:   cardIDs[0],
			CardID2:   cardIDs[1],
			CardID3:   cardIDs[2],
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, tx, d); err != nil {
			return err
		}
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"deck_id":   created.ID,
	}).Info("Колода обновлена")

	return created, nil
}
