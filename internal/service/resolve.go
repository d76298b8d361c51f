package service

import (
	"encoding/json"
	"sort"

	"BarInventory/internal/model"

	"gorm.io/datatypes"
)

// ResolveInventory returns copies of items carrying the glass_id of their formatted glass type,
// or 0 when the category was not reconciled.
func ResolveInventory(items []*model.InventoryItem, glassIDs map[string]uint64) []*model.InventoryItem {
	out := make([]*model.InventoryItem, len(items))
	for i, it := range items {
		c := *it
		c.GlassID = glassIDs[FormatGlassCategory(it.GlassType)]
		out[i] = &c
	}
	return out
}

// ResolveTransactions returns copies of txs carrying the drink_id of their exact drink name, or 0.
func ResolveTransactions(txs []*model.Transaction, drinkIDs map[string]uint64) []*model.Transaction {
	out := make([]*model.Transaction, len(txs))
	for i, tx := range txs {
		c := *tx
		c.DrinkID = drinkIDs[tx.Drink]
		out[i] = &c
	}
	return out
}

// UnmatchedDrinks reports every distinct drink name sold that the catalog does not know, in order of
// first sale.
func UnmatchedDrinks(txs []*model.Transaction, source string) []model.Remediation {
	type tally struct {
		count  int
		venues map[model.Venue]struct{}
	}
	var order []string
	seen := make(map[string]*tally)
	for _, tx := range txs {
		if tx.DrinkID != 0 {
			continue
		}
		t, ok := seen[tx.Drink]
		if !ok {
			t = &tally{venues: make(map[model.Venue]struct{})}
			seen[tx.Drink] = t
			order = append(order, tx.Drink)
		}
		t.count++
		t.venues[tx.Location] = struct{}{}
	}

	out := make([]model.Remediation, 0, len(order))
	for _, drink := range order {
		t := seen[drink]
		venues := make([]string, 0, len(t.venues))
		for v := range t.venues {
			venues = append(venues, string(v))
		}
		sort.Strings(venues)
		detail, _ := json.Marshal(map[string]any{"transactions": t.count, "venues": venues})
		out = append(out, model.Remediation{
			Key:    drink,
			Cause:  model.CauseUnmatchedDrink,
			Source: source,
			Detail: datatypes.JSON(detail),
		})
	}
	return out
}
