package service

import (
	"context"
	"io"

	"BarInventory/internal/adapter"
	"BarInventory/internal/interfaces"
	"BarInventory/internal/model"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeLookup answers from fixed tables and records the categories it was asked for.
type fakeLookup struct {
	answers map[string][]model.CatalogDrink
	errs    map[string]error
	calls   []string
}

func (f *fakeLookup) GetName() string { return "fake" }

func (f *fakeLookup) DrinksByGlass(ctx context.Context, category string) ([]model.CatalogDrink, error) {
	f.calls = append(f.calls, category)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[category]; ok {
		return nil, err
	}
	drinks, ok := f.answers[category]
	if !ok {
		return nil, adapter.ErrNoDrinks
	}
	return drinks, nil
}

// captureStore keeps the last snapshot instead of writing it.
type captureStore struct {
	snap    *interfaces.Snapshot
	scripts interfaces.Scripts
	err     error
}

func (c *captureStore) Materialize(_ context.Context, snap *interfaces.Snapshot, scripts interfaces.Scripts) error {
	if c.err != nil {
		return c.err
	}
	c.snap = snap
	c.scripts = scripts
	return nil
}

func drinks(names ...string) []model.CatalogDrink {
	out := make([]model.CatalogDrink, len(names))
	for i, n := range names {
		out[i] = model.CatalogDrink{Name: n, APIID: "id-" + n}
	}
	return out
}
