package postgres

import (
	"testing"

	"serotonyl.ru/idle-game/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		DBHost:     "localhost",
		DBPort:     5432,
		DBUser:     "gameuser",
		DBPassword: "secret",
		DBName:     "idle_game",
		DBSSLMode:  "disable",
		DBMaxConns: 25,
		DBMinConns: 5,
	}
}

// Пул счётчика обязан быть маленьким и отдельным от основного:
// генератор ID вызывается из транзакций, держащих соединения
// основного пула, и не должен конкурировать с ними за соединения.
func TestCounterPoolConfigIsSmallAndSeparate(t *testing.T) {
	cfg := testConfig()

	pc, err := counterPoolConfig(cfg)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	if pc.MaxConns >= cfg.DBMaxConns {
		t.Errorf("пул счётчика (%d) не меньше основного (%d)", pc.MaxConns, cfg.DBMaxConns)
	}
	if pc.MaxConns != 2 {
		t.Errorf("MaxConns = %d, ожидалось 2", pc.MaxConns)
	}
	if pc.MinConns != 1 {
		t.Errorf("MinConns = %d, ожидалось 1", pc.MinConns)
	}
}

func TestCounterPoolConfigRejectsBadDSN(t *testing.T) {
	cfg := testConfig()
	cfg.DBHost = "bad host"

	if _, err := counterPoolConfig(cfg); err == nil {
		t.Error("ожидалась ошибка парсинга DSN, получен nil")
	}
}
