// Package idgen выдаёт глобально уникальные, монотонно растущие ID
// для всех новых строк. Счётчик живёт одной строкой в таблице id_counter
// и инкрементируется атомарным UPDATE ... RETURNING.
//
// Генератор работает через ВЫДЕЛЕННЫЙ пул, мимо транзакции вызывающего:
// внутри транзакции блокировка строки счётчика сериализовала бы все
// мутации движка, а общий пул при полной загрузке давал бы взаимную
// блокировку — все соединения заняты транзакциями, каждая из которых
// ждёт соединение для счётчика. Пропуски ID при откатах допустимы,
// уникальность — нет.
package idgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/idle-game/internal/common"
)

// maxAttempts — предел повторов при конфликтах сериализации/дедлоках.
const maxAttempts = 100

// Generator — генератор идентификаторов.
type Generator struct {
	db *pgxpool.Pool
}

// New создаёт генератор поверх пула соединений.
func New(db *pgxpool.Pool) *Generator {
	return &Generator{db: db}
}

// Next возвращает следующий ID.
// При транзиентных конфликтах (deadlock, serialization failure)
// повторяет попытку, после maxAttempts — фатальная ошибка.
func (g *Generator) Next(ctx context.Context) (int64, error) {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		var id int64
		err := g.db.QueryRow(ctx,
			"UPDATE id_counter SET last_id = last_id + 1 WHERE id = 1 RETURNING last_id",
		).Scan(&id)
		if err == nil {
			return id, nil
		}

		if isRetryable(err) {
			lastErr = err
			continue
		}
		return 0, fmt.Errorf("ошибка генерации id: %w", err)
	}

	return 0, fmt.Errorf("%w: %v", common.ErrIDGenerationFailed, lastErr)
}

// isRetryable распознаёт транзиентные ошибки PostgreSQL:
// 40001 — serialization_failure, 40P01 — deadlock_detected.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
