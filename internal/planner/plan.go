package planner

import "sharedeck/internal/pricing"

type ItemPlan struct {
	ItemID          string  `json:"item_id"`
	CardName        string  `json:"card_name"`
	Quantity        int     `json:"quantity"`
	SelectedStore   *string `json:"selected_store"`
	SelectedStoreID *string `json:"selected_store_id"`
	UnitPrice       *int    `json:"unit_price"`
	Subtotal        *int    `json:"subtotal"`
	Status          string  `json:"status"`
}

type Plan struct {
	TotalPrice   int            `json:"total_price"`
	Items        []ItemPlan     `json:"items"`
	StoreSummary map[string]int `json:"store_summary"`
}

// Aggregate folds selections into a plan. Out-of-stock items add nothing to
// the total or the per-store summary.
func Aggregate(selections []Selection) *Plan {
	plan := &Plan{
		Items:        make([]ItemPlan, 0, len(selections)),
		StoreSummary: map[string]int{},
	}

	for _, sel := range selections {
		ip := ItemPlan{
			ItemID:   sel.Item.ID,
			CardName: sel.Item.CardName,
			Quantity: sel.Item.Quantity,
			Status:   StatusOutOfStock,
		}
		if sel.Found {
			storeName, storeID := sel.StoreName, sel.StoreID
			unit, subtotal := sel.UnitPrice, sel.Subtotal()

			ip.SelectedStore = &storeName
			ip.SelectedStoreID = &storeID
			ip.UnitPrice = &unit
			ip.Subtotal = &subtotal
			ip.Status = StatusAvailable

			plan.TotalPrice += subtotal
			plan.StoreSummary[storeName] += subtotal
		}
		plan.Items = append(plan.Items, ip)
	}
	return plan
}

// Compute runs the engine and the aggregator over one snapshot.
func Compute(snap *pricing.Snapshot) *Plan {
	return Aggregate(Select(snap))
}
