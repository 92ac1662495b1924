// Package loginbonus — repository.go выполняет операции с таблицей
// login_bonus_progress.
package loginbonus

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет методы для работы с прогрессом логин-бонусов.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий прогресса.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Get возвращает прогресс игрока по программе или pgx.ErrNoRows.
func (r *Repository) Get(ctx context.Context, q postgres.Querier, playerID, loginBonusID int64) (*Progress, error) {
	query := `
		SELECT id, player_id, login_bonus_id, last_reward_sequence, loop_count, created_at, updated_at, deleted_at
		FROM login_bonus_progress
		WHERE player_id = $1 AND login_bonus_id = $2
	`
	var p Progress
	err := q.QueryRow(ctx, query, playerID, loginBonusID).Scan(
		&p.ID, &p.PlayerID, &p.LoginBonusID, &p.LastRewardSequence, &p.LoopCount,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert создаёт строку прогресса.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, p *Progress) error {
	query := `
		INSERT INTO login_bonus_progress (id, player_id, login_bonus_id, last_reward_sequence, loop_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, p.ID, p.PlayerID, p.LoginBonusID, p.LastRewardSequence, p.LoopCount, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания прогресса логин-бонуса: %w", err)
	}
	return nil
}

// Update сохраняет продвинутый прогресс.
func (r *Repository) Update(ctx context.Context, q postgres.Querier, p *Progress) error {
	query := `
		UPDATE login_bonus_progress
		SET last_reward_sequence = $2, loop_count = $3, updated_at = $4
		WHERE id = $1
	`
	_, err := q.Exec(ctx, query, p.ID, p.LastRewardSequence, p.LoopCount, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка обновления прогресса логин-бонуса: %w", err)
	}
	return nil
}
