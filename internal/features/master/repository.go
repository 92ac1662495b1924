// Package master — repository.go выполняет read-only запросы к мастер-таблицам.
// Никаких мутаций: движок потребляет конфигурацию, но не меняет её.
package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/db/postgres"
)

// Repository предоставляет lookups по мастер-данным.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий мастер-данных.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetItemTemplate возвращает шаблон предмета по id.
func (r *Repository) GetItemTemplate(ctx context.Context, q postgres.Querier, id int64) (*ItemTemplate, error) {
	query := `
		SELECT id, item_type, name, description, amount_per_sec, max_level,
		       max_amount_per_sec, base_exp_per_level, gained_exp, shortening_min
		FROM item_templates
		WHERE id = $1
	`
	return scanItemTemplate(q.QueryRow(ctx, query, id))
}

// GetItemTemplateByType возвращает шаблон, дополнительно сверяя тип.
// Несовпадение типа равнозначно отсутствию предмета.
func (r *Repository) GetItemTemplateByType(ctx context.Context, q postgres.Querier, id int64, itemType int) (*ItemTemplate, error) {
	query := `
		SELECT id, item_type, name, description, amount_per_sec, max_level,
		       max_amount_per_sec, base_exp_per_level, gained_exp, shortening_min
		FROM item_templates
		WHERE id = $1 AND item_type = $2
	`
	return scanItemTemplate(q.QueryRow(ctx, query, id, itemType))
}

func scanItemTemplate(row pgx.Row) (*ItemTemplate, error) {
	var t ItemTemplate
	err := row.Scan(
		&t.ID, &t.ItemType, &t.Name, &t.Description, &t.AmountPerSec, &t.MaxLevel,
		&t.MaxAmountPerSec, &t.BaseExpPerLevel, &t.GainedExp, &t.ShorteningMin,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения шаблона предмета: %w", err)
	}
	return &t, nil
}

// ListActiveGachas возвращает гачи, активные на момент now,
// в порядке display_order.
func (r *Repository) ListActiveGachas(ctx context.Context, q postgres.Querier, now int64) ([]*GachaDefinition, error) {
	query := `
		SELECT id, name, start_at, end_at, display_order, created_at
		FROM gacha_definitions
		WHERE start_at <= $1 AND end_at >= $1
		ORDER BY display_order ASC
	`
	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка гач: %w", err)
	}
	defer rows.Close()

	var gachas []*GachaDefinition
	for rows.Next() {
		var g GachaDefinition
		if err := rows.Scan(&g.ID, &g.Name, &g.StartAt, &g.EndAt, &g.DisplayOrder, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования гачи: %w", err)
		}
		gachas = append(gachas, &g)
	}
	return gachas, rows.Err()
}

// GetActiveGacha возвращает гачу по id, только если её окно содержит now.
func (r *Repository) GetActiveGacha(ctx context.Context, q postgres.Querier, id, now int64) (*GachaDefinition, error) {
	query := `
		SELECT id, name, start_at, end_at, display_order, created_at
		FROM gacha_definitions
		WHERE id = $1 AND start_at <= $2 AND end_at >= $2
	`
	var g GachaDefinition
	err := q.QueryRow(ctx, query, id, now).Scan(&g.ID, &g.Name, &g.StartAt, &g.EndAt, &g.DisplayOrder, &g.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrGachaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения гачи: %w", err)
	}
	return &g, nil
}

// ListGachaPool возвращает пул гачи строго по возрастанию id —
// порядок обхода при взвешенном розыгрыше фиксирован.
func (r *Repository) ListGachaPool(ctx context.Context, q postgres.Querier, gachaID int64) ([]*GachaPoolEntry, error) {
	query := `
		SELECT id, gacha_id, item_type, item_id, amount, weight, created_at
		FROM gacha_pool_entries
		WHERE gacha_id = $1
		ORDER BY id ASC
	`
	rows, err := q.Query(ctx, query, gachaID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения пула гачи: %w", err)
	}
	defer rows.Close()

	var entries []*GachaPoolEntry
	for rows.Next() {
		var e GachaPoolEntry
		if err := rows.Scan(&e.ID, &e.GachaID, &e.ItemType, &e.ItemID, &e.Amount, &e.Weight, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования пула: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// ListActiveBroadcasts возвращает всеобщие подарки, чьё окно содержит now.
func (r *Repository) ListActiveBroadcasts(ctx context.Context, q postgres.Querier, now int64) ([]*BroadcastPresent, error) {
	query := `
		SELECT id, registered_start_at, registered_end_at, item_type, item_id, amount, message, created_at
		FROM broadcast_presents
		WHERE registered_start_at <= $1 AND registered_end_at >= $1
	`
	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения всеобщих подарков: %w", err)
	}
	defer rows.Close()

	var presents []*BroadcastPresent
	for rows.Next() {
		var p BroadcastPresent
		if err := rows.Scan(&p.ID, &p.RegisteredStartAt, &p.RegisteredEndAt, &p.ItemType, &p.ItemID, &p.Amount, &p.Message, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования подарка: %w", err)
		}
		presents = append(presents, &p)
	}
	return presents, rows.Err()
}

// ListActiveLoginBonuses возвращает логин-бонусы, активные на момент now.
func (r *Repository) ListActiveLoginBonuses(ctx context.Context, q postgres.Querier, now int64) ([]*LoginBonusDefinition, error) {
	query := `
		SELECT id, start_at, end_at, column_count, looped, created_at
		FROM login_bonus_definitions
		WHERE start_at <= $1 AND end_at >= $1
	`
	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения логин-бонусов: %w", err)
	}
	defer rows.Close()

	var bonuses []*LoginBonusDefinition
	for rows.Next() {
		var b LoginBonusDefinition
		if err := rows.Scan(&b.ID, &b.StartAt, &b.EndAt, &b.ColumnCount, &b.Looped, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования логин-бонуса: %w", err)
		}
		bonuses = append(bonuses, &b)
	}
	return bonuses, rows.Err()
}

// GetLoginBonusReward возвращает награду шага (бонус, позиция).
// Отсутствие строки — ошибка конфигурации расписания, не пользователя.
func (r *Repository) GetLoginBonusReward(ctx context.Context, q postgres.Querier, loginBonusID int64, sequence int) (*LoginBonusReward, error) {
	query := `
		SELECT id, login_bonus_id, reward_sequence, item_type, item_id, amount, created_at
		FROM login_bonus_rewards
		WHERE login_bonus_id = $1 AND reward_sequence = $2
	`
	var rw LoginBonusReward
	err := q.QueryRow(ctx, query, loginBonusID, sequence).Scan(
		&rw.ID, &rw.LoginBonusID, &rw.RewardSequence, &rw.ItemType, &rw.ItemID, &rw.Amount, &rw.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrLoginBonusRewardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения награды логин-бонуса: %w", err)
	}
	return &rw, nil
}

// ActiveRuleset возвращает активную версию мастер-данных.
// Апстрим сверяет её с версией из заголовка клиента на каждом запросе.
func (r *Repository) ActiveRuleset(ctx context.Context) (*Ruleset, error) {
	var rs Ruleset
	err := r.db.QueryRow(ctx,
		"SELECT id, status, version FROM rulesets WHERE status = 1",
	).Scan(&rs.ID, &rs.Status, &rs.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrRulesetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения активной версии: %w", err)
	}
	return &rs, nil
}
