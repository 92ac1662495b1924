// Package token — repository.go выполняет операции с таблицей one_time_tokens.
package token

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с одноразовыми токенами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий токенов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InvalidateAll гасит все живые токены игрока.
// Вызывается перед выдачей нового: у игрока не бывает двух живых токенов.
func (r *Repository) InvalidateAll(ctx context.Context, q postgres.Querier, playerID, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE one_time_tokens SET deleted_at = $2 WHERE player_id = $1 AND deleted_at IS NULL",
		playerID, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка погашения токенов: %w", err)
	}
	return nil
}

// Insert создаёт новый токен.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, t *OneTimeToken) error {
	query := `
		INSERT INTO one_time_tokens (id, player_id, token, token_type, expired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, t.ID, t.PlayerID, t.Token, t.TokenType, t.ExpiredAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания токена: %w", err)
	}
	return nil
}

// FindLive ищет непогашенный токен по значению и типу.
// Блокирует строку (FOR UPDATE), чтобы два конкурентных запроса
// не могли погасить один токен дважды.
func (r *Repository) FindLive(ctx context.Context, q postgres.Querier, tokenValue string, tokenType int) (*OneTimeToken, error) {
	query := `
		SELECT id, player_id, token, token_type, expired_at, created_at, updated_at, deleted_at
		FROM one_time_tokens
		WHERE token = $1 AND token_type = $2 AND deleted_at IS NULL
		FOR UPDATE
	`
	var t OneTimeToken
	err := q.QueryRow(ctx, query, tokenValue, tokenType).Scan(
		&t.ID, &t.PlayerID, &t.Token, &t.TokenType, &t.ExpiredAt, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pgx.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return &t, nil
}

// MarkConsumed гасит токен по значению.
func (r *Repository) MarkConsumed(ctx context.Context, q postgres.Querier, tokenValue string, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE one_time_tokens SET deleted_at = $2 WHERE token = $1",
		tokenValue, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка погашения токена: %w", err)
	}
	return nil
}

// Prune физически удаляет давно погашенные и давно истёкшие токены.
// Истёкшие, но не погашенные строки чистятся по expired_at: при отказе
// в Consume транзакция вызывающего откатывается, так что гашение
// просроченных токенов на месте не закрепилось бы.
// Вызывается планировщиком обслуживания.
func (r *Repository) Prune(ctx context.Context, before int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM one_time_tokens WHERE (deleted_at IS NOT NULL AND deleted_at < $1) OR expired_at < $1",
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки токенов: %w", err)
	}
	return tag.RowsAffected(), nil
}
