// Package token — одноразовые токены, защищающие мутации от повтора.
// models.go описывает сущность токена и его типы.
package token

// Типы токенов. Тип фиксирует, какую операцию токен разрешает.
const (
	TypeGacha   = 1 // розыгрыш гачи
	TypeEnhance = 2 // усиление карты
)

// OneTimeToken — одноразовый типизированный токен игрока.
// Живёт до expired_at; deleted_at проставляется при погашении.
type OneTimeToken struct {
	ID        int64  `db:"id"`
	PlayerID  int64  `db:"player_id"`
	Token     string `db:"token"`
	TokenType int    `db:"token_type"`
	ExpiredAt int64  `db:"expired_at"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}
