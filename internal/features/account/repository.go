// Package account — repository.go выполняет операции с таблицей sessions.
package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с сессиями.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий сессий.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InvalidateSessions гасит все живые сессии игрока.
func (r *Repository) InvalidateSessions(ctx context.Context, q postgres.Querier, playerID, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE sessions SET updated_at = $2, deleted_at = $2 WHERE player_id = $1 AND deleted_at IS NULL",
		playerID, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка погашения сессий: %w", err)
	}
	return nil
}

// InsertSession создаёт сессию.
func (r *Repository) InsertSession(ctx context.Context, q postgres.Querier, s *Session) error {
	query := `
		INSERT INTO sessions (id, player_id, session_id, expired_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, s.ID, s.PlayerID, s.SessionID, s.ExpiredAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return nil
}

// FindLiveSession возвращает живую сессию по значению или pgx.ErrNoRows.
func (r *Repository) FindLiveSession(ctx context.Context, q postgres.Querier, sessionID string) (*Session, error) {
	query := `
		SELECT id, player_id, session_id, expired_at, created_at, updated_at, deleted_at
		FROM sessions
		WHERE session_id = $1 AND deleted_at IS NULL
	`
	var s Session
	err := q.QueryRow(ctx, query, sessionID).Scan(
		&s.ID, &s.PlayerID, &s.SessionID, &s.ExpiredAt, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// MarkExpired гасит сессию по значению.
func (r *Repository) MarkExpired(ctx context.Context, q postgres.Querier, sessionID string, now int64) error {
	_, err := q.Exec(ctx,
		"UPDATE sessions SET updated_at = $2, deleted_at = $2 WHERE session_id = $1",
		sessionID, now,
	)
	if err != nil {
		return fmt.Errorf("ошибка погашения сессии: %w", err)
	}
	return nil
}

// PruneSessions физически удаляет давно погашенные сессии.
func (r *Repository) PruneSessions(ctx context.Context, before int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM sessions WHERE deleted_at IS NOT NULL AND deleted_at < $1",
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки сессий: %w", err)
	}
	return tag.RowsAffected(), nil
}
