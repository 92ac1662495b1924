// Package deck — активная тройка карт игрока.
// У игрока в любой момент не больше одной живой колоды; замена
// мягко удаляет старую и вставляет новую строку.
package deck

// Deck — состав колоды. Ровно три слота.
type Deck struct {
	ID        int64  `db:"id"`
	PlayerID  int64  `db:"player_id"`
	CardID1   int64  `db:"card_id_1"`
	CardID2   int64  `db:"card_id_2"`
	CardID3   int64  `db:"card_id_3"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

// CardIDs возвращает слоты колоды списком.
func (d *Deck) CardIDs() []int64 {
	return []int64{d.CardID1, d.CardID2, d.CardID3}
}
