package interfaces

import (
	"context"

	"BarInventory/internal/model"
)

// Snapshot is everything one build writes to the store.
type Snapshot struct {
	Inventory    []*model.InventoryItem
	Transactions []*model.Transaction
	Catalog      []*model.CatalogEntry
	Remediations []model.Remediation
}

// Scripts holds the two schema scripts, verbatim.
type Scripts struct {
	Schema    string // run before the load
	Reporting string // run after the load
}

// StoreWriter materializes a snapshot.
type StoreWriter interface {
	Materialize(ctx context.Context, snap *Snapshot, scripts Scripts) error
}
