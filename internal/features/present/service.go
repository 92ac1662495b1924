// Package present — service.go: доставка рассылок, страницы ящика
// и получение подарков.
package present

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/config"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/features/master"
	"serotonyl.ru/idle-game/internal/features/player"
	"serotonyl.ru/idle-game/internal/idgen"
)

// Page — одна страница ящика подарков.
type Page struct {
	Presents []*Present
	HasMore  bool
}

// Service управляет ящиком подарков.
type Service struct {
	db      *pgxpool.Pool
	repo    *Repository
	master  *master.Repository
	players *player.Repository
	grantor *item.Service
	idgen   *idgen.Generator
	cfg     *config.Config
}

// NewService создаёт сервис подарков.
func NewService(db *pgxpool.Pool, repo *Repository, m *master.Repository, players *player.Repository, grantor *item.Service, gen *idgen.Generator, cfg *config.Config) *Service {
	return &Service{db: db, repo: repo, master: m, players: players, grantor: grantor, idgen: gen, cfg: cfg}
}

// Deliver кладёт подарок в ящик игрока. Используется гачей.
func (s *Service) Deliver(ctx context.Context, q postgres.Querier, playerID int64, itemType int, itemID, amount int64, message string, now int64) (*Present, error) {
	id, err := s.idgen.Next(ctx)
	if err != nil {
		return nil, err
	}
	p := &Present{
		ID:        id,
		PlayerID:  playerID,
		SentAt:    now,
		ItemType:  itemType,
		ItemID:    itemID,
		Amount:    amount,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, q, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DistributeBroadcasts доставляет игроку все активные рассылки,
// которых он ещё не получал: подарок в ящик плюс квитанция.
// Выполняется при первом входе за сутки в транзакции вызывающего.
func (s *Service) DistributeBroadcasts(ctx context.Context, q postgres.Querier, playerID, now int64) ([]*Present, error) {
	broadcasts, err := s.master.ListActiveBroadcasts(ctx, q, now)
	if err != nil {
		return nil, err
	}
	if len(broadcasts) == 0 {
		return nil, nil
	}

	received, err := s.repo.ListReceiptBroadcastIDs(ctx, q, playerID)
	if err != nil {
		return nil, err
	}

	var delivered []*Present
	for _, b := range broadcasts {
		if received[b.ID] {
			continue
		}

		p, err := s.Deliver(ctx, q, playerID, b.ItemType, b.ItemID, b.Amount, b.Message, now)
		if err != nil {
			return nil, err
		}

		recID, err := s.idgen.Next(ctx)
		if err != nil {
			return nil, err
		}
		rec := &BroadcastReceipt{
			ID:          recID,
			PlayerID:    playerID,
			BroadcastID: b.ID,
			ReceivedAt:  now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.InsertReceipt(ctx, q, rec); err != nil {
			return nil, err
		}
		delivered = append(delivered, p)
	}

	if len(delivered) > 0 {
		log.WithFields(log.Fields{
			"player_id": playerID,
			"count":     len(delivered),
		}).Debug("Доставлены рассылки")
	}
	return delivered, nil
}

// List возвращает страницу ящика. Нумерация страниц с единицы.
func (s *Service) List(ctx context.Context, playerID int64, page int) (*Page, error) {
	if page < 1 {
		return nil, common.ErrInvalidInput
	}

	size := s.cfg.PresentPageSize
	offset := size * (page - 1)
	// +1 строка — признак следующей страницы
	presents, err := s.repo.ListPage(ctx, s.db, playerID, offset, size+1)
	if err != nil {
		return nil, err
	}

	result := &Page{Presents: presents}
	if len(presents) > size {
		result.Presents = presents[:size]
		result.HasMore = true
	}
	return result, nil
}

// Claim получает перечисленные подарки: каждый мягко удаляется из ящика,
// его вложение выдаётся грантором. Чужие и уже полученные id молча
// пропускаются; всё происходит в одной транзакции.
// Возвращает фактически полученные подарки и созданные грантором сущности.
func (s *Service) Claim(ctx context.Context, playerID int64, presentIDs []int64, viewerID string, now int64) ([]*Present, *item.GrantResult, error) {
	if len(presentIDs) == 0 {
		return nil, nil, common.ErrInvalidInput
	}

	res := &item.GrantResult{}
	var claimed []*Present
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := s.players.GetDevice(ctx, tx, playerID, viewerID); err != nil {
			return err
		}

		live, err := s.repo.GetLiveByIDs(ctx, tx, playerID, presentIDs)
		if err != nil {
			return err
		}

		for _, p := range live {
			if err := s.repo.SoftDelete(ctx, tx, p.ID, now); err != nil {
				return err
			}
			if err := s.grantor.Grant(ctx, tx, playerID, p.ItemID, p.ItemType, p.Amount, now, res); err != nil {
				return err
			}
			p.DeletedAt = &now
			claimed = append(claimed, p)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"claimed":   len(claimed),
	}).Info("Получены подарки")

	return claimed, res, nil
}
