// Package item — repository.go выполняет операции с таблицами
// player_cards и player_items.
package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с владением предметами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий владения.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertCard создаёт карту игрока.
func (r *Repository) InsertCard(ctx context.Context, q postgres.Querier, c *OwnedCard) error {
	query := `
		INSERT INTO player_cards (id, player_id, card_template_id, amount_per_sec, level, total_exp, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query, c.ID, c.PlayerID, c.CardTemplateID, c.AmountPerSec, c.Level, c.TotalExp, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания карты: %w", err)
	}
	return nil
}

// GetCard возвращает карту по id.
func (r *Repository) GetCard(ctx context.Context, q postgres.Querier, id int64) (*OwnedCard, error) {
	query := `
		SELECT id, player_id, card_template_id, amount_per_sec, level, total_exp, created_at, updated_at, deleted_at
		FROM player_cards
		WHERE id = $1
	`
	var c OwnedCard
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.PlayerID, &c.CardTemplateID, &c.AmountPerSec, &c.Level, &c.TotalExp,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения карты: %w", err)
	}
	return &c, nil
}

// ListCards возвращает все карты игрока.
func (r *Repository) ListCards(ctx context.Context, q postgres.Querier, playerID int64) ([]*OwnedCard, error) {
	query := `
		SELECT id, player_id, card_template_id, amount_per_sec, level, total_exp, created_at, updated_at, deleted_at
		FROM player_cards
		WHERE player_id = $1
	`
	rows, err := q.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения карт: %w", err)
	}
	defer rows.Close()

	var cards []*OwnedCard
	for rows.Next() {
		var c OwnedCard
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.CardTemplateID, &c.AmountPerSec, &c.Level, &c.TotalExp, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования карты: %w", err)
		}
		cards = append(cards, &c)
	}
	return cards, rows.Err()
}

// CountOwnedCards возвращает, сколько из перечисленных карт
// действительно принадлежит игроку.
func (r *Repository) CountOwnedCards(ctx context.Context, q postgres.Querier, playerID int64, cardIDs []int64) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		"SELECT COUNT(*) FROM player_cards WHERE player_id = $1 AND id = ANY($2)",
		playerID, cardIDs,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки владения картами: %w", err)
	}
	return n, nil
}

// GetCardsByIDs возвращает карты по списку id.
func (r *Repository) GetCardsByIDs(ctx context.Context, q postgres.Querier, ids []int64) ([]*OwnedCard, error) {
	query := `
		SELECT id, player_id, card_template_id, amount_per_sec, level, total_exp, created_at, updated_at, deleted_at
		FROM player_cards
		WHERE id = ANY($1)
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения карт: %w", err)
	}
	defer rows.Close()

	var cards []*OwnedCard
	for rows.Next() {
		var c OwnedCard
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.CardTemplateID, &c.AmountPerSec, &c.Level, &c.TotalExp, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования карты: %w", err)
		}
		cards = append(cards, &c)
	}
	return cards, rows.Err()
}

// getCardWithTemplate возвращает карту игрока вместе с полями шаблона
// для расчёта уровней. Строка карты блокируется до конца транзакции.
func (r *Repository) getCardWithTemplate(ctx context.Context, q postgres.Querier, cardID, playerID int64) (*cardWithTemplate, error) {
	query := `
		SELECT pc.id, pc.player_id, pc.card_template_id, pc.amount_per_sec, pc.level, pc.total_exp,
		       it.amount_per_sec AS base_amount_per_sec, it.max_level, it.max_amount_per_sec, it.base_exp_per_level
		FROM player_cards AS pc
		INNER JOIN item_templates AS it ON pc.card_template_id = it.id
		WHERE pc.id = $1 AND pc.player_id = $2
		FOR UPDATE OF pc
	`
	var c cardWithTemplate
	err := q.QueryRow(ctx, query, cardID, playerID).Scan(
		&c.ID, &c.PlayerID, &c.CardTemplateID, &c.AmountPerSec, &c.Level, &c.TotalExp,
		&c.BaseAmountPerSec, &c.MaxLevel, &c.MaxAmountPerSec, &c.BaseExpPerLevel,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения карты с шаблоном: %w", err)
	}
	return &c, nil
}

// UpdateCard сохраняет производительность, уровень и опыт карты.
func (r *Repository) UpdateCard(ctx context.Context, q postgres.Querier, id, amountPerSec int64, level int, totalExp, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE player_cards SET amount_per_sec = $2, level = $3, total_exp = $4, updated_at = $5 WHERE id = $1",
		id, amountPerSec, level, totalExp, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления карты: %w", err)
	}
	return nil
}

// GetOwnedItem возвращает стопку (игрок, шаблон) или pgx.ErrNoRows.
func (r *Repository) GetOwnedItem(ctx context.Context, q postgres.Querier, playerID, itemID int64) (*OwnedItem, error) {
	query := `
		SELECT id, player_id, item_type, item_id, amount, created_at, updated_at, deleted_at
		FROM player_items
		WHERE player_id = $1 AND item_id = $2
	`
	var it OwnedItem
	err := q.QueryRow(ctx, query, playerID, itemID).Scan(
		&it.ID, &it.PlayerID, &it.ItemType, &it.ItemID, &it.Amount, &it.CreatedAt, &it.UpdatedAt, &it.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItems возвращает все стопки игрока.
func (r *Repository) ListItems(ctx context.Context, q postgres.Querier, playerID int64) ([]*OwnedItem, error) {
	query := `
		SELECT id, player_id, item_type, item_id, amount, created_at, updated_at, deleted_at
		FROM player_items
		WHERE player_id = $1
	`
	rows, err := q.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения предметов: %w", err)
	}
	defer rows.Close()

	var items []*OwnedItem
	for rows.Next() {
		var it OwnedItem
		if err := rows.Scan(&it.ID, &it.PlayerID, &it.ItemType, &it.ItemID, &it.Amount, &it.CreatedAt, &it.UpdatedAt, &it.DeletedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования предмета: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// InsertOwnedItem создаёт новую стопку.
func (r *Repository) InsertOwnedItem(ctx context.Context, q postgres.Querier, it *OwnedItem) error {
	query := `
		INSERT INTO player_items (id, player_id, item_type, item_id, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, it.ID, it.PlayerID, it.ItemType, it.ItemID, it.Amount, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания стопки предметов: %w", err)
	}
	return nil
}

// UpdateOwnedItemAmount сохраняет новое количество в стопке.
func (r *Repository) UpdateOwnedItemAmount(ctx context.Context, q postgres.Querier, id, amount, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE player_items SET amount = $2, updated_at = $3 WHERE id = $1",
		id, amount, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления стопки: %w", err)
	}
	return nil
}

// getMaterialForUpdate возвращает стопку материала усиления игрока
// вместе с gained_exp шаблона, блокируя строку владения.
// Ищем по id строки владения; только материалы усиления (item_type=3).
func (r *Repository) getMaterialForUpdate(ctx context.Context, q postgres.Querier, ownedItemID, playerID int64) (*materialWithExp, error) {
	query := `
		SELECT pi.id, pi.player_id, pi.item_type, pi.item_id, pi.amount, pi.created_at, pi.updated_at,
		       it.gained_exp
		FROM player_items AS pi
		INNER JOIN item_templates AS it ON pi.item_id = it.id
		WHERE pi.item_type = $1 AND pi.id = $2 AND pi.player_id = $3
		FOR UPDATE OF pi
	`
	var m materialWithExp
	err := q.QueryRow(ctx, query, materialItemType, ownedItemID, playerID).Scan(
		&m.ID, &m.PlayerID, &m.ItemType, &m.ItemID, &m.Amount, &m.CreatedAt, &m.UpdatedAt,
		&m.GainedExp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения материала: %w", err)
	}
	return &m, nil
}
