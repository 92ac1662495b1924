// Package master — доступ к версионируемым мастер-данным (конфигурации игры).
// models.go описывает шаблоны предметов, гачи, расписания бонусов и подарков.
// Движок эти таблицы ТОЛЬКО читает; правки — через админ-контур.
package master

// Дискриминаторы типов предметов. Используются и в мастер-данных,
// и в наградах логин-бонусов, подарках и пулах гач.
const (
	ItemTypeCoin            = 1 // игровая валюта
	ItemTypeCard            = 2 // карта-производитель
	ItemTypeEnhanceMaterial = 3 // материал усиления (опыт)
	ItemTypeTimeMaterial    = 4 // материал сокращения времени
)

// ItemTemplate — шаблон предмета.
// Для карт заполнены поля производительности и уровней,
// для материалов — gained_exp / shortening_min.
type ItemTemplate struct {
	ID              int64  `db:"id"`
	ItemType        int    `db:"item_type"`
	Name            string `db:"name"`
	Description     string `db:"description"`
	AmountPerSec    int64  `db:"amount_per_sec"`     // производительность на 1 уровне
	MaxLevel        int    `db:"max_level"`          // предел прокачки
	MaxAmountPerSec int64  `db:"max_amount_per_sec"` // производительность на max уровне
	BaseExpPerLevel int64  `db:"base_exp_per_level"` // опыт для перехода 1 -> 2
	GainedExp       int64  `db:"gained_exp"`         // опыт за единицу материала
	ShorteningMin   int64  `db:"shortening_min"`
}

// GachaDefinition — описание одной гачи с окном активности.
type GachaDefinition struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	StartAt      int64  `db:"start_at"`
	EndAt        int64  `db:"end_at"`
	DisplayOrder int    `db:"display_order"`
	CreatedAt    int64  `db:"created_at"`
}

// GachaPoolEntry — один возможный исход гачи с весом.
// Порядок по возрастанию id значим для детерминизма розыгрыша.
type GachaPoolEntry struct {
	ID        int64 `db:"id"`
	GachaID   int64 `db:"gacha_id"`
	ItemType  int   `db:"item_type"`
	ItemID    int64 `db:"item_id"`
	Amount    int64 `db:"amount"`
	Weight    int64 `db:"weight"`
	CreatedAt int64 `db:"created_at"`
}

// BroadcastPresent — «всеобщий» подарок: выдаётся каждому игроку
// ровно один раз в течение окна регистрации.
type BroadcastPresent struct {
	ID                int64  `db:"id"`
	RegisteredStartAt int64  `db:"registered_start_at"`
	RegisteredEndAt   int64  `db:"registered_end_at"`
	ItemType          int    `db:"item_type"`
	ItemID            int64  `db:"item_id"`
	Amount            int64  `db:"amount"`
	Message           string `db:"message"`
	CreatedAt         int64  `db:"created_at"`
}

// LoginBonusDefinition — расписание логин-бонуса.
// ColumnCount — длина трека; Looped — зацикливается ли трек.
type LoginBonusDefinition struct {
	ID          int64 `db:"id"`
	StartAt     int64 `db:"start_at"`
	EndAt       int64 `db:"end_at"`
	ColumnCount int   `db:"column_count"`
	Looped      bool  `db:"looped"`
	CreatedAt   int64 `db:"created_at"`
}

// LoginBonusReward — награда конкретного шага трека логин-бонуса.
type LoginBonusReward struct {
	ID             int64 `db:"id"`
	LoginBonusID   int64 `db:"login_bonus_id"`
	RewardSequence int   `db:"reward_sequence"`
	ItemType       int   `db:"item_type"`
	ItemID         int64 `db:"item_id"`
	Amount         int64 `db:"amount"`
	CreatedAt      int64 `db:"created_at"`
}

// Ruleset — версия мастер-данных. Активная ровно одна (status = 1);
// апстрим сверяет её с версией, заявленной клиентом.
type Ruleset struct {
	ID      int64  `db:"id"`
	Status  int    `db:"status"`
	Version string `db:"version"`
}
