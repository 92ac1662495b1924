// Package account — регистрация, вход и сессии.
package account

import (
	"serotonyl.ru/idle-game/internal/features/item"
	"serotonyl.ru/idle-game/internal/features/loginbonus"
	"serotonyl.ru/idle-game/internal/features/player"
	"serotonyl.ru/idle-game/internal/features/present"
)

// Session — сессия устройства. У игрока одна живая сессия:
// новый вход гасит предыдущие.
type Session struct {
	ID        int64  `db:"id"`
	PlayerID  int64  `db:"player_id"`
	SessionID string `db:"session_id"`
	ExpiredAt int64  `db:"expired_at"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

// LoginResult — результат входа или регистрации: игрок, сессия
// и всё, что изменилось при суточной обработке.
type LoginResult struct {
	Player       *player.Player
	Session      *Session
	Rewards      *item.GrantResult      // выдано суточной обработкой
	LoginBonuses []*loginbonus.Progress // продвинутые календари
	Presents     []*present.Present     // доставленные рассылки
	FirstOfDay   bool                   // была ли суточная обработка
}
