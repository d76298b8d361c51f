// Package file serves catalog lookups from a local JSON fixture so builds can run offline.
//
// The fixture maps a formatted glass category to a filter.php body:
//
//	{"Cocktail_glass": {"drinks": [{"strDrink": "Martini", "idDrink": "11000"}]}}
//
// A category missing from the fixture behaves like the API's `"drinks": null`.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"BarInventory/internal/adapter"
	"BarInventory/internal/config"
	"BarInventory/internal/interfaces"
	"BarInventory/internal/model"

	"github.com/sirupsen/logrus"
)

const ProviderName = "file"

func init() {
	adapter.Register(ProviderName, NewFileAdapter)
}

type Adapter struct {
	path    string
	answers map[string]json.RawMessage
	logger  *logrus.Logger
}

func NewFileAdapter(cfg *config.CatalogConfig, logger *logrus.Logger) (interfaces.CatalogLookup, error) {
	if cfg.FixturePath == "" {
		return nil, fmt.Errorf("catalog.fixture_path is required for the file provider")
	}
	raw, err := os.ReadFile(cfg.FixturePath)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	answers := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", cfg.FixturePath, err)
	}
	return &Adapter{path: cfg.FixturePath, answers: answers, logger: logger}, nil
}

func (a *Adapter) GetName() string {
	return a.path
}

func (a *Adapter) DrinksByGlass(ctx context.Context, category string) ([]model.CatalogDrink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, ok := a.answers[category]
	if !ok {
		return nil, adapter.ErrNoDrinks
	}
	return adapter.DecodeDrinks(body)
}
