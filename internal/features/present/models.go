// Package present — ящик подарков и доставка массовых рассылок.
package present

// Present — неполученный подарок в ящике игрока.
// Получение мягко удаляет строку и выдаёт вложение грантором.
type Present struct {
	ID        int64  `db:"id"`
	PlayerID  int64  `db:"player_id"`
	SentAt    int64  `db:"sent_at"`
	ItemType  int    `db:"item_type"`
	ItemID    int64  `db:"item_id"`
	Amount    int64  `db:"amount"`
	Message   string `db:"present_message"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

// BroadcastReceipt — отметка «рассылка доставлена игроку».
// Гарантирует однократность доставки каждой рассылки.
type BroadcastReceipt struct {
	ID          int64 `db:"id"`
	PlayerID    int64 `db:"player_id"`
	BroadcastID int64 `db:"broadcast_id"`
	ReceivedAt  int64 `db:"received_at"`
	CreatedAt   int64 `db:"created_at"`
	UpdatedAt   int64 `db:"updated_at"`
}
