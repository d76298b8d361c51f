package service

import (
	"context"
	"fmt"

	"BarInventory/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// CatalogService queries the catalog once per category, one call at a time.
type CatalogService struct {
	lookup interfaces.CatalogLookup
	logger *logrus.Logger
}

func NewCatalogService(lookup interfaces.CatalogLookup, logger *logrus.Logger) *CatalogService {
	return &CatalogService{lookup: lookup, logger: logger}
}

// Source names the provider in logs.
func (s *CatalogService) Source() string {
	return s.lookup.GetName()
}

// Fetch collects an answer for every category in order. Lookup failures are recorded in the
// results; only cancellation of ctx itself stops the loop.
func (s *CatalogService) Fetch(ctx context.Context, categories []string) ([]CategoryResult, error) {
	results := make([]CategoryResult, 0, len(categories))
	for _, cat := range categories {
		drinks, err := s.lookup.DrinksByGlass(ctx, cat)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("catalog fetch interrupted at %s: %w", cat, ctxErr)
			}
			s.logger.WithError(err).WithField("glass", cat).Warn("catalog lookup failed, skipping category")
			results = append(results, CategoryResult{Category: cat, Err: err})
			continue
		}
		s.logger.WithFields(logrus.Fields{"glass": cat, "drinks": len(drinks)}).Info("catalog lookup ok")
		results = append(results, CategoryResult{Category: cat, Drinks: drinks})
	}
	return results, nil
}
