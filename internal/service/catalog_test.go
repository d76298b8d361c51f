package service

import (
	"context"
	"errors"
	"testing"

	"BarInventory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogFetchIsolatesFailures(t *testing.T) {
	lookup := &fakeLookup{
		answers: map[string][]model.CatalogDrink{
			"Cocktail_glass": drinks("Martini"),
			"Highball_glass": drinks("Mojito"),
		},
		errs: map[string]error{"Coupe": errors.New("connection reset")},
	}

	results, err := NewCatalogService(lookup, quietLogger()).Fetch(context.Background(),
		[]string{"Cocktail_glass", "Coupe", "Highball_glass"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Cocktail_glass", "Coupe", "Highball_glass"}, lookup.calls)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "Mojito", results[2].Drinks[0].Name)
}

func TestCatalogFetchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCatalogService(&fakeLookup{}, quietLogger()).Fetch(ctx, []string{"Coupe"})
	assert.ErrorIs(t, err, context.Canceled)
}
