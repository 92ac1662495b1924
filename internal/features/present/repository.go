// Package present — repository.go выполняет операции с таблицами
// present_box и broadcast_receipts.
package present

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с ящиком подарков.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий подарков.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert кладёт подарок в ящик.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, p *Present) error {
	query := `
		INSERT INTO present_box (id, player_id, sent_at, item_type, item_id, amount, present_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query, p.ID, p.PlayerID, p.SentAt, p.ItemType, p.ItemID, p.Amount, p.Message, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания подарка: %w", err)
	}
	return nil
}

// ListPage возвращает страницу неполученных подарков: свежие первыми,
// при равенстве created_at порядок стабилизируется по id.
// Запрашивается на одну строку больше размера страницы — лишняя строка
// означает, что есть следующая страница.
func (r *Repository) ListPage(ctx context.Context, q postgres.Querier, playerID int64, offset, limit int) ([]*Present, error) {
	query := `
		SELECT id, player_id, sent_at, item_type, item_id, amount, present_message, created_at, updated_at, deleted_at
		FROM present_box
		WHERE player_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id
		OFFSET $2 LIMIT $3
	`
	rows, err := q.Query(ctx, query, playerID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения подарков: %w", err)
	}
	defer rows.Close()

	var presents []*Present
	for rows.Next() {
		var p Present
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.SentAt, &p.ItemType, &p.ItemID, &p.Amount, &p.Message, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования подарка: %w", err)
		}
		presents = append(presents, &p)
	}
	return presents, rows.Err()
}

// GetLiveByIDs возвращает неполученные подарки игрока из списка id.
// Чужие, уже полученные и несуществующие молча отбрасываются.
func (r *Repository) GetLiveByIDs(ctx context.Context, q postgres.Querier, playerID int64, ids []int64) ([]*Present, error) {
	query := `
		SELECT id, player_id, sent_at, item_type, item_id, amount, present_message, created_at, updated_at, deleted_at
		FROM present_box
		WHERE player_id = $1 AND id = ANY($2) AND deleted_at IS NULL
		FOR UPDATE
	`
	rows, err := q.Query(ctx, query, playerID, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения подарков: %w", err)
	}
	defer rows.Close()

	var presents []*Present
	for rows.Next() {
		var p Present
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.SentAt, &p.ItemType, &p.ItemID, &p.Amount, &p.Message, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования подарка: %w", err)
		}
		presents = append(presents, &p)
	}
	return presents, rows.Err()
}

// SoftDelete помечает подарок полученным.
func (r *Repository) SoftDelete(ctx context.Context, q postgres.Querier, id, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE present_box SET updated_at = $2, deleted_at = $2 WHERE id = $1",
		id, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка получения подарка: %w", err)
	}
	return nil
}

// ListReceiptBroadcastIDs возвращает id рассылок, уже доставленных игроку.
func (r *Repository) ListReceiptBroadcastIDs(ctx context.Context, q postgres.Querier, playerID int64) (map[int64]bool, error) {
	rows, err := q.Query(ctx,
		"SELECT broadcast_id FROM broadcast_receipts WHERE player_id = $1",
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения квитанций: %w", err)
	}
	defer rows.Close()

	received := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования квитанции: %w", err)
		}
		received[id] = true
	}
	return received, rows.Err()
}

// InsertReceipt фиксирует доставку рассылки игроку.
func (r *Repository) InsertReceipt(ctx context.Context, q postgres.Querier, rec *BroadcastReceipt) error {
	query := `
		INSERT INTO broadcast_receipts (id, player_id, broadcast_id, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, rec.ID, rec.PlayerID, rec.BroadcastID, rec.ReceivedAt, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания квитанции: %w", err)
	}
	return nil
}
