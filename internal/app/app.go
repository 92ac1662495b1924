// Package app инициализирует все компоненты движка.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы,
// планировщик и собирает всё в один объект App.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"serotonyl.ru/idle-game/internal/config"
	"serotonyl.ru/idle-game/internal/db/postgres"
	"serotonyl.ru/idle-game/internal/features/account"
	"serotonyl.ru/idle-game/internal/features/deck"
	"serotonyl.ru/idle-game/internal/features/economy"
	"serotonyl.ru/idle-game/internal/features/gacha"
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/features/loginbonus"
	"serotonyl.ru/idle-game/internal/features/master"
	"serotonyl.ru/idle-game/internal/features/player"
	"serotonyl.ru/idle-game/internal/features/present"
	"serotonyl.ru/idle-game/internal/features/token"
	"serotonyl.ru/idle-game/internal/idgen"
	"serotonyl.ru/idle-game/internal/jobs"
)

// App содержит все компоненты движка.
type App struct {
	DB        *pgxpool.Pool
	IDDB      *pgxpool.Pool // выделенный пул генератора ID
	Scheduler *jobs.Scheduler

	Master   *master.Repository
	Accounts *account.Service
	Items    *item.Service
	Decks    *deck.Service
	Economy  *economy.Service
	Gacha    *gacha.Service
	Presents *present.Service
	Tokens   *token.Service
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Запускаем миграции
	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Генератор идентификаторов ===
	// Отдельный маленький пул: счётчик не конкурирует за соединения
	// с транзакциями основного пула
	idPool, err := postgres.NewCounterPool(ctx, cfg)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка пула счётчика: %w", err)
	}
	gen := idgen.New(idPool)

	// === 3. Репозитории ===
	masterRepo := master.NewRepository(pool)
	playerRepo := player.NewRepository(pool)
	itemRepo := item.NewRepository(pool)
	deckRepo := deck.NewRepository(pool)
	tokenRepo := token.NewRepository(pool)
	bonusRepo := loginbonus.NewRepository(pool)
	presentRepo := present.NewRepository(pool)
	accountRepo := account.NewRepository(pool)

	// === 4. Сервисы ===
	tokenService := token.NewService(tokenRepo, gen, cfg)
	itemService := item.NewService(pool, itemRepo, playerRepo, masterRepo, tokenService, gen)
	deckService := deck.NewService(pool, deckRepo, itemRepo, gen)
	economyService := economy.NewService(pool, playerRepo, deckRepo, itemRepo)
	bonusService := loginbonus.NewService(bonusRepo, masterRepo, itemService, gen)
	presentService := present.NewService(pool, presentRepo, masterRepo, playerRepo, itemService, gen, cfg)
	gachaService := gacha.NewService(pool, masterRepo, playerRepo, presentService, tokenService, cfg)
	accountService := account.NewService(pool, accountRepo, playerRepo, deckRepo, itemService, bonusService, presentService, gen, cfg)

	// === 5. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg.AppTimezone, tokenService, accountService)

	log.Info("Движок собран")

	return &App{
		DB:        pool,
		IDDB:      idPool,
		Scheduler: scheduler,
		Master:    masterRepo,
		Accounts:  accountService,
		Items:     itemService,
		Decks:     deckService,
		Economy:   economyService,
		Gacha:     gachaService,
		Presents:  presentService,
		Tokens:    tokenService,
	}, nil
}

// Close закрывает оба пула соединений.
func (a *App) Close() {
	a.IDDB.Close()
	a.DB.Close()
}

// runMigrations выполняет все SQL-миграции по порядку.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Инициализируем систему миграций
	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Master},
		{2, migration002IDCounter},
		{3, migration003Players},
		{4, migration004Items},
		{5, migration005Decks},
		{6, migration006LoginBonusPresents},
		{7, migration007TokensSessions},
		{8, migration008Seed},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}
