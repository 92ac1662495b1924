// Package player — базовая сущность игрока и его привязки.
// models.go: игрок, устройство (viewer) и запись бана.
// Все времена — unix-секунды; deleted_at = NULL означает живую строку.
package player

// Player — экономическое состояние игрока.
// Баланс Coin никогда не уходит в минус (инвариант движка).
type Player struct {
	ID              int64  `db:"id"`
	Coin            int64  `db:"coin"`
	LastRewardAt    int64  `db:"last_reward_at"` // последний забор накопленных монет
	LastActivatedAt int64  `db:"last_activated_at"`
	RegisteredAt    int64  `db:"registered_at"`
	CreatedAt       int64  `db:"created_at"`
	UpdatedAt       int64  `db:"updated_at"`
	DeletedAt       *int64 `db:"deleted_at"`
}

// Device — привязка игрока к внешнему идентификатору устройства/зрителя.
// Создаётся при регистрации, дальше не меняется.
type Device struct {
	ID           int64  `db:"id"`
	PlayerID     int64  `db:"player_id"`
	ViewerID     string `db:"viewer_id"`
	PlatformType int    `db:"platform_type"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
	DeletedAt    *int64 `db:"deleted_at"`
}

// Ban — отметка о бане игрока. Наличие строки = забанен.
type Ban struct {
	ID        int64  `db:"id"`
	PlayerID  int64  `db:"player_id"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}
