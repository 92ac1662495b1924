// Package player — repository.go выполняет операции с таблицами
// players, player_devices и player_bans.
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с игроками.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий игроков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const playerColumns = `id, coin, last_reward_at, last_activated_at, registered_at, created_at, updated_at, deleted_at`

// Insert создаёт запись игрока.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, p *Player) error {
	query := `
		INSERT INTO players (id, coin, last_reward_at, last_activated_at, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, p.ID, p.Coin, p.LastRewardAt, p.LastActivatedAt, p.RegisteredAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания игрока: %w", err)
	}
	return nil
}

// Get возвращает игрока по id.
func (r *Repository) Get(ctx context.Context, q postgres.Querier, id int64) (*Player, error) {
	return r.get(ctx, q, id, false)
}

// GetForUpdate возвращает игрока, блокируя строку до конца транзакции.
// Используется перед любым изменением баланса (списание гачи, накопления).
func (r *Repository) GetForUpdate(ctx context.Context, q postgres.Querier, id int64) (*Player, error) {
	return r.get(ctx, q, id, true)
}

func (r *Repository) get(ctx context.Context, q postgres.Querier, id int64, forUpdate bool) (*Player, error) {
	query := "SELECT " + playerColumns + " FROM players WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p Player
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Coin, &p.LastRewardAt, &p.LastActivatedAt, &p.RegisteredAt,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения игрока: %w", err)
	}
	return &p, nil
}

// UpdateCoin сохраняет новый баланс игрока.
func (r *Repository) UpdateCoin(ctx context.Context, q postgres.Querier, id, coin, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE players SET coin = $2, updated_at = $3 WHERE id = $1",
		id, coin, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления баланса: %w", err)
	}
	return nil
}

// UpdateCoinAndRewardAt сохраняет баланс и сдвигает время последнего
// забора наград одним запросом (забор накоплений).
func (r *Repository) UpdateCoinAndRewardAt(ctx context.Context, q postgres.Querier, id, coin, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE players SET coin = $2, last_reward_at = $3, updated_at = $3 WHERE id = $1",
		id, coin, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения наград: %w", err)
	}
	return nil
}

// TouchActivity отмечает активность игрока: обновляет last_activated_at
// и updated_at. Вызывается на каждом логине.
func (r *Repository) TouchActivity(ctx context.Context, q postgres.Querier, id, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE players SET updated_at = $2, last_activated_at = $2 WHERE id = $1",
		id, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления активности: %w", err)
	}
	return nil
}

// InsertDevice создаёт привязку устройства к игроку.
func (r *Repository) InsertDevice(ctx context.Context, q postgres.Querier, d *Device) error {
	query := `
		INSERT INTO player_devices (id, player_id, viewer_id, platform_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, d.ID, d.PlayerID, d.ViewerID, d.PlatformType, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания устройства: %w", err)
	}
	return nil
}

// GetDevice возвращает привязку (игрок, viewer).
// Отсутствие строки значит, что запрос пришёл с чужого устройства.
func (r *Repository) GetDevice(ctx context.Context, q postgres.Querier, playerID int64, viewerID string) (*Device, error) {
	query := `
		SELECT id, player_id, viewer_id, platform_type, created_at, updated_at, deleted_at
		FROM player_devices
		WHERE player_id = $1 AND viewer_id = $2
	`
	var d Device
	err := q.QueryRow(ctx, query, playerID, viewerID).Scan(
		&d.ID, &d.PlayerID, &d.ViewerID, &d.PlatformType, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения устройства: %w", err)
	}
	return &d, nil
}

// IsBanned сообщает, забанен ли игрок.
func (r *Repository) IsBanned(ctx context.Context, q postgres.Querier, playerID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM player_bans WHERE player_id = $1)", playerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки бана: %w", err)
	}
	return exists, nil
}
