package card

// Card is a catalog card mirrored from the official card list.
type Card struct {
	ID        string `db:"id" json:"id"`
	CardID    string `db:"card_id" json:"card_id"`
	Name      string `db:"name" json:"name"`
	Color     string `db:"color" json:"color"`
	BlockIcon int    `db:"block_icon" json:"block_icon"`
	ImagePath string `db:"image_path" json:"image_path"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"`
}

// CustomCard is a user-defined stand-in for a card not yet in the catalog.
type CustomCard struct {
	ID        string  `db:"id" json:"id"`
	UserID    string  `db:"user_id" json:"user_id"`
	Name      string  `db:"name" json:"name"`
	Color     string  `db:"color" json:"color"`
	Color2    *string `db:"color2" json:"color2"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
	UpdatedAt int64   `db:"updated_at" json:"updated_at"`
}

const maxCustomNameLength = 100
