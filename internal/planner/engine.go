// Package planner computes the cheapest single-store choice for every item of
// a purchase list and rolls the choices up into an optimal plan.
package planner

import "sharedeck/internal/pricing"

const (
	StatusAvailable  = "available"
	StatusOutOfStock = "out_of_stock"
)

// Selection is the engine's decision for one item. Found is false when no
// store has a usable price.
type Selection struct {
	Item      pricing.SnapshotItem
	StoreID   string
	StoreName string
	UnitPrice int
	Found     bool
}

// Subtotal is unit price times quantity, zero when nothing was found.
func (s Selection) Subtotal() int {
	if !s.Found {
		return 0
	}
	return s.UnitPrice * s.Item.Quantity
}

// Select picks, for every item, the store with the lowest usable price.
// Stores are scanned in snapshot order and only a strictly lower price
// replaces the current pick, so equal prices go to the earliest store.
func Select(snap *pricing.Snapshot) []Selection {
	selections := make([]Selection, 0, len(snap.Items))
	for _, item := range snap.Items {
		sel := Selection{Item: item}
		for _, st := range snap.Stores {
			price, ok := snap.Price(item.ID, st.ID)
			if !ok {
				continue
			}
			if !sel.Found || price < sel.UnitPrice {
				sel.StoreID = st.ID
				sel.StoreName = st.Name
				sel.UnitPrice = price
				sel.Found = true
			}
		}
		selections = append(selections, sel)
	}
	return selections
}
