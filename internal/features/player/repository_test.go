package player

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// recordingQuerier запоминает выполненные запросы и отдаёт
// заранее заготовленную строку игрока.
type recordingQuerier struct {
	queries []string
	row     pgx.Row
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.queries = append(q.queries, sql)
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("неожиданный Query")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.queries = append(q.queries, sql)
	return q.row
}

type playerRow struct {
	p Player
}

func (r *playerRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.p.ID
	*dest[1].(*int64) = r.p.Coin
	*dest[2].(*int64) = r.p.LastRewardAt
	*dest[3].(*int64) = r.p.LastActivatedAt
	*dest[4].(*int64) = r.p.RegisteredAt
	*dest[5].(*int64) = r.p.CreatedAt
	*dest[6].(*int64) = r.p.UpdatedAt
	*dest[7].(**int64) = r.p.DeletedAt
	return nil
}

// Чтение перед мутацией обязано блокировать строку игрока —
// на этом держится сериализация конкурентных входов и списаний.
func TestGetForUpdateLocksRow(t *testing.T) {
	r := NewRepository(nil)
	ctx := context.Background()

	q := &recordingQuerier{row: &playerRow{p: Player{ID: 7, LastActivatedAt: 100}}}
	p, err := r.GetForUpdate(ctx, q, 7)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if p.ID != 7 || p.LastActivatedAt != 100 {
		t.Errorf("строка игрока прочитана неверно: %+v", p)
	}
	if len(q.queries) != 1 || !strings.Contains(q.queries[0], "FOR UPDATE") {
		t.Errorf("GetForUpdate должен блокировать строку, запрос: %q", q.queries)
	}
}

func TestGetDoesNotLockRow(t *testing.T) {
	r := NewRepository(nil)
	ctx := context.Background()

	q := &recordingQuerier{row: &playerRow{p: Player{ID: 7}}}
	if _, err := r.Get(ctx, q, 7); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(q.queries) != 1 || strings.Contains(q.queries[0], "FOR UPDATE") {
		t.Errorf("Get не должен блокировать строку, запрос: %q", q.queries)
	}
}
