package token

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"serotonyl.ru/idle-game/internal/common"
)

// fakeQuerier отдаёт заготовленную строку токена и запоминает
// все выполненные Exec — по ним видно, пишет ли Consume в БД.
type fakeQuerier struct {
	row   pgx.Row
	execs []string
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (q *fakeQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("неожиданный Query")
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return q.row
}

type tokenRow struct {
	t OneTimeToken
}

func (r *tokenRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.t.ID
	*dest[1].(*int64) = r.t.PlayerID
	*dest[2].(*string) = r.t.Token
	*dest[3].(*int) = r.t.TokenType
	*dest[4].(*int64) = r.t.ExpiredAt
	*dest[5].(*int64) = r.t.CreatedAt
	*dest[6].(*int64) = r.t.UpdatedAt
	*dest[7].(**int64) = r.t.DeletedAt
	return nil
}

type errRow struct {
	err error
}

func (r *errRow) Scan(_ ...any) error { return r.err }

func TestConsumeRejectsMissingToken(t *testing.T) {
	s := NewService(NewRepository(nil), nil, nil)
	q := &fakeQuerier{row: &errRow{err: pgx.ErrNoRows}}

	err := s.Consume(context.Background(), q, "нет-такого", TypeGacha, 1000)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("ожидалась ErrInvalidToken, получили %v", err)
	}
	if len(q.execs) != 0 {
		t.Errorf("отказ не должен писать в БД, запросы: %q", q.execs)
	}
}

// Отказ по сроку не должен сопровождаться записью: Consume работает
// внутри транзакции вызывающего, и она откатывается вместе с ошибкой —
// любое гашение на месте всё равно бы не закрепилось.
func TestConsumeRejectsExpiredTokenWithoutWriting(t *testing.T) {
	s := NewService(NewRepository(nil), nil, nil)
	q := &fakeQuerier{row: &tokenRow{t: OneTimeToken{
		ID:        1,
		PlayerID:  7,
		Token:     "устаревший",
		TokenType: TypeGacha,
		ExpiredAt: 500,
	}}}

	err := s.Consume(context.Background(), q, "устаревший", TypeGacha, 1000)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("ожидалась ErrInvalidToken, получили %v", err)
	}
	if len(q.execs) != 0 {
		t.Errorf("просроченный токен гасить нельзя, запросы: %q", q.execs)
	}
}

func TestConsumeMarksLiveTokenConsumed(t *testing.T) {
	s := NewService(NewRepository(nil), nil, nil)
	q := &fakeQuerier{row: &tokenRow{t: OneTimeToken{
		ID:        1,
		PlayerID:  7,
		Token:     "живой",
		TokenType: TypeEnhance,
		ExpiredAt: 2000,
	}}}

	if err := s.Consume(context.Background(), q, "живой", TypeEnhance, 1000); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if len(q.execs) != 1 || !strings.Contains(q.execs[0], "UPDATE one_time_tokens SET deleted_at") {
		t.Errorf("живой токен должен гаситься ровно одним UPDATE, запросы: %q", q.execs)
	}
}
