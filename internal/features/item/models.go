// Package item — владение предметами: карты, стопки материалов,
// выдача наград (грантор) и усиление карт.
// models.go описывает структуры владения и результаты выдачи.
package item

// OwnedCard — карта-производитель в собственности игрока.
// Создаётся грантором на 1 уровне; меняется только усилением.
type OwnedCard struct {
	ID             int64  `db:"id"`
	PlayerID       int64  `db:"player_id"`
	CardTemplateID int64  `db:"card_template_id"`
	AmountPerSec   int64  `db:"amount_per_sec"` // текущая производительность
	Level          int    `db:"level"`
	TotalExp       int64  `db:"total_exp"` // накопленный опыт (не убывает)
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
	DeletedAt      *int64 `db:"deleted_at"`
}

// OwnedItem — стопка взаимозаменяемого предмета (player, item) -> amount.
// Грантор создаёт при первой выдаче, дальше инкрементирует.
type OwnedItem struct {
	ID        int64  `db:"id"`
	PlayerID  int64  `db:"player_id"`
	ItemType  int    `db:"item_type"`
	ItemID    int64  `db:"item_id"`
	Amount    int64  `db:"amount"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

// GrantResult — ровно те сущности, которые создала/обновила выдача.
// Вызывающий отдаёт их наверх в составе updatedResources.
type GrantResult struct {
	Coins []int64      // зачисленные суммы монет
	Cards []*OwnedCard // созданные карты
	Items []*OwnedItem // созданные/пополненные стопки
}

// ConsumeRequest — сколько какого материала игрок хочет сжечь при усилении.
// ID — идентификатор строки владения (OwnedItem.ID), не шаблона.
type ConsumeRequest struct {
	ID     int64
	Amount int64
}

// cardWithTemplate — карта, соединённая с полями её шаблона,
// нужными для расчёта уровней.
type cardWithTemplate struct {
	OwnedCard
	BaseAmountPerSec int64
	MaxLevel         int
	MaxAmountPerSec  int64
	BaseExpPerLevel  int64
}

// materialWithExp — строка владения материалом + его gained_exp из шаблона.
type materialWithExp struct {
	OwnedItem
	GainedExp int64
}
