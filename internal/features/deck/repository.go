// Package deck — repository.go выполняет операции с таблицей player_decks.
package deck

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с колодами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий колод.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetActive возвращает живую колоду игрока.
func (r *Repository) GetActive(ctx context.Context, q postgres.Querier, playerID int64) (*Deck, error) {
	query := `
		SELECT id, player_id, card_id_1, card_id_2, card_id_3, created_at, updated_at, deleted_at
		FROM player_decks
		WHERE player_id = $1 AND deleted_at IS NULL
	`
	var d Deck
	err := q.QueryRow(ctx, query, playerID).Scan(
		&d.ID, &d.PlayerID, &d.CardID1, &d.CardID2, &d.CardID3, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrDeckNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения колоды: %w", err)
	}
	return &d, nil
}

// SoftDeleteActive мягко удаляет живую колоду игрока (если есть).
func (r *Repository) SoftDeleteActive(ctx context.Context, q postgres.Querier, playerID, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE player_decks SET updated_at = $2, deleted_at = $2 WHERE player_id = $1 AND deleted_at IS NULL",
		playerID, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка удаления колоды: %w", err)
	}
	return nil
}

// Insert создаёт новую колоду.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, d *Deck) error {
	query := `
		INSERT INTO player_decks (id, player_id, card_id_1, card_id_2, card_id_3, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, d.ID, d.PlayerID, d.CardID1, d.CardID2, d.CardID3, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания колоды: %w", err)
	}
	return nil
}
