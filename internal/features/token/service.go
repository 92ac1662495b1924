// Package token — service.go содержит бизнес-логику одноразовых токенов:
// выдача (с погашением предыдущих) и строго однократное потребление.
//
// Выдача и потребление принимают Querier: вызывающий обязан гасить токен
// В ТОЙ ЖЕ транзакции, что и охраняемую им мутацию. Тогда неудачная
// мутация откатывает и погашение — токен не «сгорает» зря.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/config"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/idgen"
)

// Service управляет одноразовыми токенами.
type Service struct {
	repo  *Repository
	idgen *idgen.Generator
	cfg   *config.Config
}

// NewService создаёт сервис токенов.
func NewService(repo *Repository, gen *idgen.Generator, cfg *config.Config) *Service {
	return &Service{repo: repo, idgen: gen, cfg: cfg}
}

// Issue выдаёт игроку новый токен заданного типа,
// предварительно погасив все его живые токены.
func (s *Service) Issue(ctx context.Context, q postgres.Querier, playerID int64, tokenType int, now int64) (*OneTimeToken, error) {
	if err := s.repo.InvalidateAll(ctx, q, playerID, now); err != nil {
		return nil, err
	}

	id, err := s.idgen.Next(ctx)
	if err != nil {
		return nil, err
	}

	t := &OneTimeToken{
		ID:        id,
		PlayerID:  playerID,
		Token:     uuid.NewString(),
		TokenType: tokenType,
		ExpiredAt: now + s.cfg.TokenTTLSeconds,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, q, t); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id":  playerID,
		"token_type": tokenType,
	}).Debug("Выдан одноразовый токен")

	return t, nil
}

// Consume гасит токен. Ошибка ErrInvalidToken если токен отсутствует,
// другого типа, уже погашен или истёк. Повторное предъявление
// истёкшего токена тоже вернёт ErrInvalidToken.
func (s *Service) Consume(ctx context.Context, q postgres.Querier, tokenValue string, tokenType int, now int64) error {
	t, err := s.repo.FindLive(ctx, q, tokenValue, tokenType)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if t.ExpiredAt < now {
		// Просроченный токен лишь отклоняем: писать здесь бессмысленно,
		// транзакция вызывающего откатится вместе с отказом.
		// Строку физически уберёт фоновая чистка по expired_at.
		return common.ErrInvalidToken
	}

	return s.repo.MarkConsumed(ctx, q, tokenValue, now)
}

// Prune удаляет давно погашенные и давно истёкшие токены (фоновая задача).
func (s *Service) Prune(ctx context.Context, now time.Time) error {
	before := now.Add(-s.cfg.PruneRetention).Unix()
	n, err := s.repo.Prune(ctx, before)
	if err != nil {
		return fmt.Errorf("очистка токенов: %w", err)
	}
	if n > 0 {
		log.WithField("deleted", n).Debug("Удалены погашенные токены")
	}
	return nil
}
