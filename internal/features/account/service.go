// Package account — service.go: регистрация, вход, проверка сессий.
// Здесь собирается «суточная обработка»: первый вход игрока за
// календарные сутки опорного пояса продвигает логин-бонусы и
// доставляет рассылки; повторные входы только отмечают активность.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/config"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/deck"
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/features/loginbonus"
	"serotonyl.ru/idle-game/internal/features/master"
	"serotonyl.ru/idle-game/internal/features/player"
	"serotonyl.ru/idle-game/internal/features/present"
	"serotonyl.ru/idle-game/internal/idgen"
)

// Service реализует регистрацию, вход и сессии.
type Service struct {
	db       *pgxpool.Pool
	repo     *Repository
	players  *player.Repository
	decks    *deck.Repository
	grantor  *item.Service
	bonuses  *loginbonus.Service
	presents *present.Service
	idgen    *idgen.Generator
	cfg      *config.Config
	loc      *time.Location
}

// NewService создаёт сервис аккаунтов.
func NewService(db *pgxpool.Pool, repo *Repository, players *player.Repository, decks *deck.Repository, grantor *item.Service, bonuses *loginbonus.Service, presents *present.Service, gen *idgen.Generator, cfg *config.Config) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		players:  players,
		decks:    decks,
		grantor:  grantor,
		bonuses:  bonuses,
		presents: presents,
		idgen:    gen,
		cfg:      cfg,
		loc:      common.ReferenceLocation(cfg.AppTimezone),
	}
}

// newSession гасит старые сессии игрока и открывает новую.
func (s *Service) newSession(ctx context.Context, q postgres.Querier, playerID, now int64) (*Session, error) {
	if err := s.repo.InvalidateSessions(ctx, q, playerID, now); err != nil {
		return nil, err
	}
	id, err := s.idgen.Next(ctx)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        id,
		PlayerID:  playerID,
		SessionID: uuid.NewString(),
		ExpiredAt: now + s.cfg.SessionTTLSeconds,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.InsertSession(ctx, q, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// dailyProcess — суточная обработка входа: календари бонусов,
// рассылки, отметка активности. Вызывается в транзакции входа.
func (s *Service) dailyProcess(ctx context.Context, q postgres.Querier, playerID, now int64, result *LoginResult) error {
	advanced, err := s.bonuses.Advance(ctx, q, playerID, now, result.Rewards)
	if err != nil {
		return err
	}
	result.LoginBonuses = advanced

	delivered, err := s.presents.DistributeBroadcasts(ctx, q, playerID, now)
	if err != nil {
		return err
	}
	result.Presents = delivered
	result.FirstOfDay = true

	return s.players.TouchActivity(ctx, q, playerID, now)
}

// CreateAccount регистрирует нового игрока: запись игрока, привязка
// устройства, стартовые карты и колода, суточная обработка и сессия —
// всё одной транзакцией.
func (s *Service) CreateAccount(ctx context.Context, viewerID string, platformType int, now int64) (*LoginResult, error) {
	if viewerID == "" || platformType < 1 || platformType > 3 {
		return nil, common.ErrInvalidInput
	}

	result := &LoginResult{Rewards: &item.GrantResult{}}
	err := postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		playerID, err := s.idgen.Next(ctx)
		if err != nil {
			return err
		}
		p := &player.Player{
			ID:              playerID,
			Coin:            0,
			LastRewardAt:    now,
			LastActivatedAt: now,
			RegisteredAt:    now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.players.Insert(ctx, tx, p); err != nil {
			return err
		}
		result.Player = p

		deviceID, err := s.idgen.Next(ctx)
		if err != nil {
			return err
		}
		d := &player.Device{
			ID:           deviceID,
			PlayerID:     playerID,
			ViewerID:     viewerID,
			PlatformType: platformType,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.players.InsertDevice(ctx, tx, d); err != nil {
			return err
		}

		// Стартовый набор: несколько копий одной карты
		starter := &item.GrantResult{}
		for i := 0; i < s.cfg.StarterCardCount; i++ {
			if err := s.grantor.Grant(ctx, tx, playerID, s.cfg.StarterCardTemplateID, master.ItemTypeCard, 1, now, starter); err != nil {
				return err
			}
		}
		result.Rewards.Cards = append(result.Rewards.Cards, starter.Cards...)

		// Стартовая колода из первых трёх карт
		if len(starter.Cards) >= 3 {
			deckID, err := s.idgen.Next(ctx)
			if err != nil {
				return err
			}
			err = s.decks.Insert(ctx, tx, &deck.Deck{
				ID:        deckID,
				PlayerID:  playerID,
				CardID1:   starter.Cards[0].ID,
				CardID2:   starter.Cards[1].ID,
				CardID3:   starter.Cards[2].ID,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return err
			}
		}

		if err := s.dailyProcess(ctx, tx, playerID, now, result); err != nil {
			return err
		}

		sess, err := s.newSession(ctx, tx, playerID, now)
		if err != nil {
			return err
		}
		result.Session = sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id":     result.Player.ID,
		"platform_type": platformType,
	}).Info("Зарегистрирован новый игрок")

	return result, nil
}

// Login выполняет вход существующего игрока: проверяет бан и привязку
// устройства, перевыпускает сессию; при первом входе за сутки опорного
// пояса запускает суточную обработку, иначе лишь отмечает активность.
func (s *Service) Login(ctx context.Context, playerID int64, viewerID string, now int64) (*LoginResult, error) {
	if _, err := s.players.Get(ctx, s.db, playerID); err != nil {
		return nil, err
	}

	banned, err := s.players.IsBanned(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, common.ErrForbidden
	}

	if _, err := s.players.GetDevice(ctx, s.db, playerID, viewerID); err != nil {
		return nil, err
	}

	result := &LoginResult{Rewards: &item.GrantResult{}}
	err = postgres.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		// Блокируем строку игрока: конкурентные входы сериализуются,
		// и граница суток проверяется по зафиксированному
		// last_activated_at, а не по снимку до транзакции. Иначе два
		// одновременных первых входа за день выдали бы бонусы дважды.
		locked, err := s.players.GetForUpdate(ctx, tx, playerID)
		if err != nil {
			return err
		}

		sess, err := s.newSession(ctx, tx, playerID, now)
		if err != nil {
			return err
		}
		result.Session = sess

		if common.SameCalendarDay(locked.LastActivatedAt, now, s.loc) {
			// Сегодня уже входил: без бонусов и рассылок
			if err := s.players.TouchActivity(ctx, tx, playerID, now); err != nil {
				return err
			}
		} else if err := s.dailyProcess(ctx, tx, playerID, now, result); err != nil {
			return err
		}

		// Перечитываем игрока: суточная обработка могла изменить баланс
		fresh, err := s.players.Get(ctx, tx, playerID)
		if err != nil {
			return err
		}
		result.Player = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"player_id":    playerID,
		"first_of_day": result.FirstOfDay,
	}).Info("Игрок вошёл")

	return result, nil
}

// ValidateSession проверяет сессию запроса. Отсутствующая или погашенная
// сессия — ErrUnauthorized; чужая — ErrForbidden; истёкшая гасится и
// возвращает ErrSessionExpired.
func (s *Service) ValidateSession(ctx context.Context, sessionID string, playerID, now int64) error {
	sess, err := s.repo.FindLiveSession(ctx, s.db, sessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	if sess.PlayerID != playerID {
		return common.ErrForbidden
	}
	if sess.ExpiredAt < now {
		if err := s.repo.MarkExpired(ctx, s.db, sessionID, now); err != nil {
			return err
		}
		return common.ErrSessionExpired
	}
	return nil
}

// IsBanned сообщает, забанен ли игрок. Для проверок апстрима.
func (s *Service) IsBanned(ctx context.Context, playerID int64) (bool, error) {
	return s.players.IsBanned(ctx, s.db, playerID)
}

// PruneSessions удаляет давно погашенные сессии (фоновая задача).
func (s *Service) PruneSessions(ctx context.Context, now time.Time) error {
	before := now.Add(-s.cfg.PruneRetention).Unix()
	n, err := s.repo.PruneSessions(ctx, before)
	if err != nil {
		return fmt.Errorf("очистка сессий: %w", err)
	}
	if n > 0 {
		log.WithField("deleted", n).Debug("Удалены погашенные сессии")
	}
	return nil
}
