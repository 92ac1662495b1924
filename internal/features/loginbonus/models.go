// Package loginbonus — ежедневные бонусы за вход.
// Прогресс игрока по каждой активной программе хранится отдельной строкой.
package loginbonus

// Progress — позиция игрока в календаре бонусной программы.
// LastRewardSequence — последняя выданная клетка (1..ColumnCount),
// LoopCount — номер круга для зацикленных программ.
type Progress struct {
	ID                 int64  `db:"id"`
	PlayerID           int64  `db:"player_id"`
	LoginBonusID       int64  `db:"login_bonus_id"`
	LastRewardSequence int    `db:"last_reward_sequence"`
	LoopCount          int    `db:"loop_count"`
	CreatedAt          int64  `db:"created_at"`
	UpdatedAt          int64  `db:"updated_at"`
	DeletedAt          *int64 `db:"deleted_at"`
}
