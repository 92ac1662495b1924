// Package item — service.go: грантор наград, усиление карт и инвентарь.
package item

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/master"
	"serotonyl.ru/idle-game/internal/features/player"
	"serotonyl.ru/idle-game/internal/features/token"
	"serotonyl.ru/idle-game/internal/idgen"
)

// materialItemType — тип шаблона материалов усиления.
const materialItemType = master.ItemTypeEnhanceMaterial

// Inventory — ответ на запрос инвентаря: свежий токен усиления,
// состояние игрока и всё его имущество.
type Inventory struct {
	Token  *token.OneTimeToken
	Player *player.Player
	Items  []*OwnedItem
	Cards  []*OwnedCard
}

// Service реализует выдачу наград и усиление карт.
type Service struct {
	db      *pgxpool.Pool
	repo    *Repository
	players *player.Repository
	master  *master.Repository
	tokens  *token.Service
	idgen   *idgen.Generator
}

// NewService создаёт сервис предметов.
func NewService(db *pgxpool.Pool, repo *Repository, players *player.Repository, m *master.Repository, tokens *token.Service, gen *idgen.Generator) *Service {
	return &Service{db: db, repo: repo, players: players, master: m, tokens: tokens, idgen: gen}
}

// Grant выдаёт игроку награду (itemType, itemID, amount) внутри транзакции
// вызывающего и дописывает созданные сущности в res.
// Единая точка выдачи: логин-бонусы, подарки и гача проходят через неё.
func (s *Service) Grant(ctx context.Context, q postgres.Querier, playerID, itemID int64, itemType int, amount, now int64, res *GrantResult) error {
	switch itemType {
	case master.ItemTypeCoin:
		p, err := s.players.Get(ctx, q, playerID)
		if err != nil {
			return err
		}
		if err := s.players.UpdateCoin(ctx, q, playerID, p.Coin+amount, now); err != nil {
			return err
		}
		res.Coins = append(res.Coins, amount)

	case master.ItemTypeCard:
		tpl, err := s.master.GetItemTemplateByType(ctx, q, itemID, itemType)
		if err != nil {
			return err
		}
		id, err := s.idgen.Next(ctx)
		if err != nil {
			return err
		}
		c := &OwnedCard{
			ID:             id,
			PlayerID:       playerID,
			CardTemplateID: tpl.ID,
			AmountPerSec:   tpl.AmountPerSec,
			Level:          1,
			TotalExp:       0,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.repo.InsertCard(ctx, q, c); err != nil {
			return err
		}
		res.Cards = append(res.Cards, c)

	case master.ItemTypeEnhanceMaterial, master.ItemTypeTimeMaterial:
		tpl, err := s.master.GetItemTemplateByType(ctx, q, itemID, itemType)
		if err != nil {
			return err
		}
		owned, err := s.repo.GetOwnedItem(ctx, q, playerID, tpl.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			id, err := s.idgen.Next(ctx)
			if err != nil {
				return err
			}
			it := &OwnedItem{
				ID:        id,
				PlayerID:  playerID,
				ItemType:  itemType,
				ItemID:    tpl.ID,
				Amount:    amount,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.InsertOwnedItem(ctx, q, it); err != nil {
				return err
			}
			res.Items = append(res.Items, it)
			return nil
		}
		if err != nil {
			return err
		}
		owned.Amount += amount
		owned.UpdatedAt = now
		if err := s.repo.UpdateOwnedItemAmount(ctx, q, owned.ID, owned.Amount, now); err != nil {
			return err
		}
		res.Items = append(res.Items, owned)

	default:
		return common.ErrInvalidItemType
	}
	return nil
}

// ListItems возвращает инвентарь игрока и выдаёт одноразовый токен усиления.
func (s *Service) ListItems(ctx context.Context, playerID int64, now int64) (*Inventory, error) {
	inv := &Inventory{}
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		p, err := s.players.Get(ctx, tx, playerID)
		if err != nil {
			return err
		}
		inv.Player = p

		items, err := s.repo.ListItems(ctx, tx, playerID)
		if err != nil {
			return err
		}
		inv.Items = items

		cards, err := s.repo.ListCards(ctx, tx, playerID)
		if err != nil {
			return err
		}
		inv.Cards = cards

		t, err := s.tokens.Issue(ctx, tx, playerID, token.TypeEnhance, now)
		if err != nil {
			return err
		}
		inv.Token = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Enhance сжигает материалы усиления и вкладывает их опыт в карту.
// Операция защищена одноразовым токеном типа «усиление»; токен гасится
// в той же транзакции, что и мутация — откат не сжигает его зря.
func (s *Service) Enhance(ctx context.Context, playerID, cardID int64, materials []ConsumeRequest, tokenValue, viewerID string, now int64) (*OwnedCard, []*OwnedItem, error) {
	if len(materials) == 0 {
		return nil, nil, common.ErrInvalidInput
	}
	// Неположительное количество раздуло бы остаток материала
	// при списании (amount -= req.Amount) и увело бы опыт карты вниз
	for _, req := range materials {
		if req.Amount <= 0 {
			return nil, nil, common.ErrInvalidInput
		}
	}

	var (
		updatedCard  *OwnedCard
		updatedItems []*OwnedItem
	)
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.tokens.Consume(ctx, tx, tokenValue, token.TypeEnhance, now); err != nil {
			return err
		}

		if _, err := s.players.GetDevice(ctx, tx, playerID, viewerID); err != nil {
			return err
		}

		card, err := s.repo.getCardWithTemplate(ctx, tx, cardID, playerID)
		if err != nil {
			return err
		}
		if card.Level >= card.MaxLevel {
			return common.ErrCardMaxLevel
		}

		for _, req := range materials {
			m, err := s.repo.getMaterialForUpdate(ctx, tx, req.ID, playerID)
			if err != nil {
				return err
			}
			if m.Amount < req.Amount {
				return common.ErrInsufficientMaterial
			}
			card.TotalExp += m.GainedExp * req.Amount

			m.Amount -= req.Amount
			m.UpdatedAt = now
			if err := s.repo.UpdateOwnedItemAmount(ctx, tx, m.ID, m.Amount, now); err != nil {
				return err
			}
			updatedItems = append(updatedItems, &m.OwnedItem)
		}

		applyLevelUps(card)

		card.UpdatedAt = now
		if err := s.repo.UpdateCard(ctx, tx, card.ID, card.AmountPerSec, card.Level, card.TotalExp, now); err != nil {
			return err
		}
		updatedCard = &card.OwnedCard
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"card_id":   cardID,
		"level":     updatedCard.Level,
	}).Info("Карта усилена")

	return updatedCard, updatedItems, nil
}
