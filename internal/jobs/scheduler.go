// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасная чистка погашенных
// токенов и сессий.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/common"
	"serotonyl.ru/idle-game/internal/features/account"
	"serotonyl.ru/idle-game/internal/features/token"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron     *cron.Cron
	tokens   *token.Service
	accounts *account.Service
}

// NewScheduler создаёт планировщик задач в опорном часовом поясе игры.
func NewScheduler(timezone string, tokens *token.Service, accounts *account.Service) *Scheduler {
	c := cron.New(cron.WithLocation(common.ReferenceLocation(timezone)))

	return &Scheduler{
		cron:     c,
		tokens:   tokens,
		accounts: accounts,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ежечасная чистка давно погашенных токенов
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Чистка одноразовых токенов")
		if err := s.tokens.Prune(ctx, time.Now()); err != nil {
			log.WithError(err).Error("[CRON] Ошибка чистки токенов")
		}
	})

	// Ежечасная чистка давно погашенных сессий
	s.cron.AddFunc("30 * * * *", func() {
		log.Debug("[CRON] Чистка сессий")
		if err := s.accounts.PruneSessions(ctx, time.Now()); err != nil {
			log.WithError(err).Error("[CRON] Ошибка чистки сессий")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
