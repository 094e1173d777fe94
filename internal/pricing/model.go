package pricing

const (
	MinPrice = 1
	MaxPrice = 9999
)

// PriceEntry is one cell of the item x store price grid. A nil Price means
// the store is confirmed out of stock.
type PriceEntry struct {
	ID        string `db:"id" json:"id"`
	ItemID    string `db:"item_id" json:"item_id"`
	StoreID   string `db:"store_id" json:"store_id"`
	Price     *int   `db:"price" json:"price"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
	UpdatedAt int64  `db:"updated_at" json:"updated_at"`
}
