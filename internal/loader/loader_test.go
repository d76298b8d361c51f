package loader

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"BarInventory/internal/config"
	"BarInventory/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func writeGzip(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestLoadTransactionsAllFormats(t *testing.T) {
	dir := t.TempDir()
	budapest := writeGzip(t, dir, "budapest.csv.gz",
		"id,time,drink,amount\n1,2023-03-01 12:00:00,Martini,2.675\n2,2023-03-01 13:00:00,Mojito,10\n")
	london := writeFile(t, dir, "london.tsv",
		"7\t2023-03-02 18:30:00\tDaiquiri\t2.665\n")
	ny := writeFile(t, dir, "ny.csv",
		"transaction_id,timestamp,drink,cost\n9,2023-03-03T20:15:00,Negroni,11.999\n")

	sources := []config.SourceConfig{
		{Name: "budapest.csv.gz", Path: budapest, Delimiter: ",", Header: true, Venue: "budapest"},
		{Name: "london", Path: london, Delimiter: "\t", Header: false, Venue: "london"},
		{Name: "ny", Path: ny, Delimiter: ",", Header: true, Venue: "new_york"},
	}

	got, err := NewLoader(quietLogger()).LoadTransactions(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Len(t, got[0], 2)
	assert.Equal(t, "1", got[0][0].SourceID)
	assert.Equal(t, "Martini", got[0][0].Drink)
	assert.Equal(t, 2.68, got[0][0].Cost)
	assert.Equal(t, model.VenueBudapest, got[0][0].Venue)
	assert.Equal(t, time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC), got[0][0].Timestamp)
	assert.Equal(t, 10.0, got[0][1].Cost)

	// headerless tab file: first row is data
	require.Len(t, got[1], 1)
	assert.Equal(t, "Daiquiri", got[1][0].Drink)
	assert.Equal(t, 2.66, got[1][0].Cost)
	assert.Equal(t, model.VenueLondon, got[1][0].Venue)

	require.Len(t, got[2], 1)
	assert.Equal(t, 12.0, got[2][0].Cost)
	assert.Equal(t, model.VenueNewYork, got[2][0].Venue)

	txs := model.Unify(got...)
	require.Len(t, txs, 4)
	for i, tx := range txs {
		assert.Equal(t, uint64(i+1), tx.ID)
		assert.Zero(t, tx.DrinkID)
	}
}

func TestLoadTransactionsColumnMismatchIsFatal(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.csv", "1,2023-03-01 12:00:00,Martini,2.5\n2,2023-03-01 12:00:00,Martini\n")

	_, err := NewLoader(quietLogger()).LoadTransactions(context.Background(), []config.SourceConfig{
		{Path: p, Venue: "london"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestLoadTransactionsBadCostIsFatal(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.csv", "1,2023-03-01 12:00:00,Martini,two\n")

	_, err := NewLoader(quietLogger()).LoadTransactions(context.Background(), []config.SourceConfig{
		{Path: p, Venue: "london"},
	})
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestLoadTransactionsMissingFile(t *testing.T) {
	_, err := NewLoader(quietLogger()).LoadTransactions(context.Background(), []config.SourceConfig{
		{Path: filepath.Join(t.TempDir(), "nope.csv"), Venue: "london"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTransactionsNotGzip(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "plain.csv.gz", "1,2023-03-01 12:00:00,Martini,2.5\n")

	_, err := NewLoader(quietLogger()).LoadTransactions(context.Background(), []config.SourceConfig{
		{Path: p, Venue: "london"},
	})
	assert.Error(t, err)
}

func TestLoadInventory(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bar_data.csv",
		"glass_type,stock,bar,supplier\n"+
			"cocktail glass,12,london,acme\n"+
			"highball glass,36 Glasses,budapest,acme\n"+
			"coupe,,new york,globex\n")

	res, err := NewLoader(quietLogger()).LoadInventory(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, res.Items, 3)

	assert.Equal(t, "cocktail glass", res.Items[0].GlassType)
	assert.Equal(t, "london", res.Items[0].Location)
	assert.Equal(t, int64(12), res.Items[0].Stock)
	assert.Equal(t, uint64(1), res.Items[0].ID)

	var attrs map[string]string
	require.NoError(t, json.Unmarshal(res.Items[0].Attributes, &attrs))
	assert.Equal(t, map[string]string{"supplier": "acme"}, attrs)

	assert.Equal(t, int64(36), res.Items[1].Stock)
	assert.Equal(t, int64(0), res.Items[2].Stock)

	require.Len(t, res.Remediations, 2)
	assert.Equal(t, "36 Glasses", res.Remediations[0].Key)
	assert.Equal(t, model.CauseNonNumericStock, res.Remediations[0].Cause)
	assert.Equal(t, "bar_data.csv", res.Remediations[0].Source)
	assert.Equal(t, "", res.Remediations[1].Key)
}

func TestLoadInventoryRequiresColumns(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bar_data.csv", "stock,bar\n1,london\n")

	_, err := NewLoader(quietLogger()).LoadInventory(context.Background(), p)
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestLoadInventoryHeaderWithBOM(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bar_data.csv", "\ufeffglass_type,stock,bar\ncoupe,3,london\n")

	res, err := NewLoader(quietLogger()).LoadInventory(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "coupe", res.Items[0].GlassType)
	assert.Equal(t, int64(3), res.Items[0].Stock)
}

func TestLoadInventoryRowCountMismatch(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bar_data.csv", "glass_type,stock,bar\ncoupe,1\n")

	_, err := NewLoader(quietLogger()).LoadInventory(context.Background(), p)
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestParseStock(t *testing.T) {
	tests := []struct {
		in    string
		want  int64
		clean bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"36 Glasses", 36, false},
		{"", 0, false},
		{"lots", 0, false},
		{"-3", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseStock(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.clean, ok, tt.in)
	}
}
