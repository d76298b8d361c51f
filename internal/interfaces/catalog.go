package interfaces

import (
	"context"

	"BarInventory/internal/config"
	"BarInventory/internal/model"

	"github.com/sirupsen/logrus"
)

// CatalogLookup is implemented by every catalog provider.
type CatalogLookup interface {
	GetName() string // provider name, used as the remediation source
	// DrinksByGlass returns the drinks the catalog lists under a formatted glass category. An empty
	// or unparseable answer is an error, never an empty slice.
	DrinksByGlass(ctx context.Context, category string) ([]model.CatalogDrink, error)
}

// Factory builds a provider from its config.
type Factory func(cfg *config.CatalogConfig, logger *logrus.Logger) (CatalogLookup, error)
