package purchase

import (
	"encoding/json"

	"sharedeck/internal/card"
)

const (
	StatusPlanning  = "planning"
	StatusPurchased = "purchased"

	MinQuantity = 1
	MaxQuantity = 10

	maxListNameLength = 100
)

type List struct {
	ID        string  `db:"id" json:"id"`
	UserID    string  `db:"user_id" json:"user_id"`
	Name      *string `db:"name" json:"name"`
	Status    string  `db:"status" json:"status"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
	UpdatedAt int64   `db:"updated_at" json:"updated_at"`
}

// Item is one line of a purchase list. Card is always a valid reference.
type Item struct {
	ID              string
	ListID          string
	Card            card.Reference
	Quantity        int
	SelectedStoreID *string
	CreatedAt       int64
	UpdatedAt       int64
}

func (i Item) MarshalJSON() ([]byte, error) {
	cardID, customCardID := i.Card.Columns()
	return json.Marshal(struct {
		ID              string  `json:"id"`
		ListID          string  `json:"list_id"`
		CardID          *string `json:"card_id"`
		CustomCardID    *string `json:"custom_card_id"`
		Quantity        int     `json:"quantity"`
		SelectedStoreID *string `json:"selected_store_id"`
		CreatedAt       int64   `json:"created_at"`
		UpdatedAt       int64   `json:"updated_at"`
	}{i.ID, i.ListID, cardID, customCardID, i.Quantity, i.SelectedStoreID, i.CreatedAt, i.UpdatedAt})
}

// ItemView is an item enriched with display data of the card it points at.
type ItemView struct {
	ID              string  `db:"id" json:"id"`
	ListID          string  `db:"list_id" json:"list_id"`
	CardID          *string `db:"card_id" json:"card_id"`
	CustomCardID    *string `db:"custom_card_id" json:"custom_card_id"`
	Quantity        int     `db:"quantity" json:"quantity"`
	SelectedStoreID *string `db:"selected_store_id" json:"selected_store_id"`
	CreatedAt       int64   `db:"created_at" json:"created_at"`
	UpdatedAt       int64   `db:"updated_at" json:"updated_at"`
	CardName        *string `db:"card_name" json:"card_name"`
	CardColor       *string `db:"card_color" json:"card_color"`
	CardImagePath   *string `db:"card_image_path" json:"card_image_path"`
}

type itemRow struct {
	ID              string  `db:"id"`
	ListID          string  `db:"list_id"`
	CardID          *string `db:"card_id"`
	CustomCardID    *string `db:"custom_card_id"`
	Quantity        int     `db:"quantity"`
	SelectedStoreID *string `db:"selected_store_id"`
	CreatedAt       int64   `db:"created_at"`
	UpdatedAt       int64   `db:"updated_at"`
}

func (r itemRow) toItem() (*Item, error) {
	ref, err := card.ParseReference(r.CardID, r.CustomCardID)
	if err != nil {
		return nil, err
	}
	return &Item{
		ID:              r.ID,
		ListID:          r.ListID,
		Card:            ref,
		Quantity:        r.Quantity,
		SelectedStoreID: r.SelectedStoreID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}
