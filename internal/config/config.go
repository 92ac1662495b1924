// Package config загружает конфигурацию движка из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"gameuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"idle_game"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	// Опорный часовой пояс для границы игрового дня (логин-бонусы, подарки).
	// Один регион — один пояс; см. SameCalendarDay в internal/common.
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Asia/Tokyo"`

	// --- Game rules ---
	// Срок жизни игровой сессии (секунды)
	SessionTTLSeconds int64 `envconfig:"SESSION_TTL_SECONDS" default:"86400"`
	// Срок жизни одноразового токена (секунды)
	TokenTTLSeconds int64 `envconfig:"TOKEN_TTL_SECONDS" default:"600"`
	// Стоимость одной крутки гачи в монетах
	GachaDrawCost int64 `envconfig:"GACHA_DRAW_COST" default:"1000"`
	// Шаблон и количество стартовых карт нового аккаунта
	StarterCardTemplateID int64 `envconfig:"STARTER_CARD_TEMPLATE_ID" default:"2"`
	StarterCardCount      int   `envconfig:"STARTER_CARD_COUNT" default:"3"`
	// Размер страницы коробки подарков
	PresentPageSize int `envconfig:"PRESENT_PAGE_SIZE" default:"100"`

	// --- Maintenance ---
	// Сколько хранить погашенные сессии/токены до физического удаления
	PruneRetention time.Duration `envconfig:"PRUNE_RETENTION" default:"72h"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.SessionTTLSeconds <= 0 {
		return fmt.Errorf("SESSION_TTL_SECONDS должен быть > 0")
	}
	if c.TokenTTLSeconds <= 0 {
		return fmt.Errorf("TOKEN_TTL_SECONDS должен быть > 0")
	}
	if c.GachaDrawCost <= 0 {
		return fmt.Errorf("GACHA_DRAW_COST должен быть > 0")
	}
	if c.StarterCardCount <= 0 {
		return fmt.Errorf("STARTER_CARD_COUNT должен быть > 0")
	}
	if c.PresentPageSize <= 0 {
		return fmt.Errorf("PRESENT_PAGE_SIZE должен быть > 0")
	}
	if c.PruneRetention < 0 {
		return fmt.Errorf("PRUNE_RETENTION не может быть отрицательным")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
