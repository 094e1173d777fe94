package allocation

import "sharedeck/internal/core"

const (
	MinQuantity = 1
	MaxQuantity = 10

	unknownStoreName  = "Unknown"
	unknownStoreColor = "#808080"
)

// Allocation commits to buying Quantity units of an item at one store.
type Allocation struct {
	ID        string `db:"id" json:"id"`
	ItemID    string `db:"item_id" json:"item_id"`
	StoreID   string `db:"store_id" json:"store_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"`
}

// View is an allocation as clients see it, with its store's display fields.
type View struct {
	ID         string `json:"id"`
	ItemID     string `json:"item_id"`
	StoreID    string `json:"store_id"`
	Quantity   int    `json:"quantity"`
	StoreName  string `json:"store_name"`
	StoreColor string `json:"store_color"`
}

// newView falls back to the unknown store name and color when ref is nil.
func newView(a *Allocation, ref *core.StoreRef) *View {
	v := &View{
		ID:         a.ID,
		ItemID:     a.ItemID,
		StoreID:    a.StoreID,
		Quantity:   a.Quantity,
		StoreName:  unknownStoreName,
		StoreColor: unknownStoreColor,
	}
	if ref != nil {
		v.StoreName = ref.Name
		v.StoreColor = ref.Color
	}
	return v
}
