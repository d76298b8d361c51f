package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportQueries(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewStoreRepository(db, 500).Materialize(context.Background(), fixtureSnapshot("run-1"), loadScripts(t)))
	repo := NewReportRepository(db)
	ctx := context.Background()

	t.Run("transactions paginate in id order", func(t *testing.T) {
		rows, total, err := repo.ListTransactions(ctx, ReportFilter{}, 2, 3)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		require.Len(t, rows, 1)
		assert.EqualValues(t, 4, rows[0].ID)
	})

	t.Run("transactions filter by location", func(t *testing.T) {
		rows, total, err := repo.ListTransactions(ctx, ReportFilter{Location: "london"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, rows, 2)
	})

	t.Run("catalog by drink", func(t *testing.T) {
		rows, _, err := repo.ListCatalog(ctx, ReportFilter{Drink: "Martini"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, rows[0].DrinkID, rows[1].DrinkID)
		assert.NotEqual(t, rows[0].GlassID, rows[1].GlassID)
	})

	t.Run("inventory", func(t *testing.T) {
		rows, total, err := repo.ListInventory(ctx, ReportFilter{}, 0, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Zero(t, rows[2].GlassID)
	})

	t.Run("remediations of the latest run", func(t *testing.T) {
		runID, err := repo.LatestRunID(ctx)
		require.NoError(t, err)
		assert.Equal(t, "run-1", runID)

		rows, total, err := repo.ListRemediations(ctx, ReportFilter{RunID: runID}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Equal(t, "Tiki_mug", rows[0].Key)
	})

	t.Run("glass demand skips unmatched sales", func(t *testing.T) {
		rows, err := repo.GlassDemand(ctx, ReportFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		// Martini counts against its lowest glass id
		assert.Equal(t, "budapest", rows[0].Location)
		assert.EqualValues(t, 1, rows[0].GlassID)
		assert.EqualValues(t, 2, rows[0].GlassesUsed)
		assert.Equal(t, "london", rows[1].Location)
		assert.EqualValues(t, 1, rows[1].GlassesUsed)
	})

	t.Run("daily sales", func(t *testing.T) {
		rows, err := repo.DailySales(ctx, ReportFilter{}, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), time.Time{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "2023-03-01", rows[0].SaleDate)
		assert.Equal(t, "Martini", rows[0].Drink)
		assert.EqualValues(t, 2, rows[0].Sold)
		assert.InDelta(t, 5.36, rows[0].Revenue, 1e-9)

		rows, err = repo.DailySales(ctx, ReportFilter{Location: "london"}, time.Time{}, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestLatestRunIDWithoutTable(t *testing.T) {
	runID, err := NewReportRepository(openTestDB(t)).LatestRunID(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runID)
}
