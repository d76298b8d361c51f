package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"BarInventory/internal/adapter"
	"BarInventory/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
)

// FormatGlassCategory turns a free-text glass type into the catalog's token: surrounding space
// trimmed, inner spaces to underscores, first letter upper case, the rest lower case.
// "cocktail glass" -> "Cocktail_glass", "HIGHBALL Glass" -> "Highball_glass".
func FormatGlassCategory(glassType string) string {
	s := strings.ReplaceAll(strings.TrimSpace(glassType), " ", "_")
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// DistinctCategories returns the formatted glass categories of the inventory in first-appearance order.
func DistinctCategories(items []*model.InventoryItem) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		cat := FormatGlassCategory(it.GlassType)
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out
}

// CategoryResult is the catalog's answer for one category. Err is set when the lookup failed.
type CategoryResult struct {
	Category string
	Drinks   []model.CatalogDrink
	Err      error
}

// Reconciliation is the output of the identity pass.
type Reconciliation struct {
	Entries      []*model.CatalogEntry // one row per (drink, category) observation
	GlassIDs     map[string]uint64     // formatted category -> glass_id
	DrinkIDs     map[string]uint64     // drink name -> drink_id
	Remediations []model.Remediation   // failed lookups
}

// Ledger carries the identifier state through the reconciliation pass. Both mappings are
// first-write-wins: an id, once handed out for a name, is never replaced.
type Ledger struct {
	nextGlassID uint64
	glassIDs    map[string]uint64
	nextDrinkID uint64
	drinkIDs    map[string]uint64
}

func NewLedger() *Ledger {
	return &Ledger{
		glassIDs: make(map[string]uint64),
		drinkIDs: make(map[string]uint64),
	}
}

// GlassID returns the id of category, allocating the next one on first sight.
func (l *Ledger) GlassID(category string) uint64 {
	if id, ok := l.glassIDs[category]; ok {
		return id
	}
	l.nextGlassID++
	l.glassIDs[category] = l.nextGlassID
	return l.nextGlassID
}

// DrinkID returns the id of drink, allocating the next one on first sight.
func (l *Ledger) DrinkID(drink string) uint64 {
	if id, ok := l.drinkIDs[drink]; ok {
		return id
	}
	l.nextDrinkID++
	l.drinkIDs[drink] = l.nextDrinkID
	return l.nextDrinkID
}

// Reconcile assigns glass and drink ids over the lookup results, in result order. A failed lookup
// becomes a remediation attributed to source and consumes no glass id, so ids stay gap-free.
func Reconcile(results []CategoryResult, source string) *Reconciliation {
	ledger := NewLedger()
	rec := &Reconciliation{}

	for _, res := range results {
		if res.Err != nil {
			rec.Remediations = append(rec.Remediations, lookupRemediation(res, source))
			continue
		}
		if _, seen := ledger.glassIDs[res.Category]; seen {
			// already reconciled under this token; a second answer would duplicate its rows
			continue
		}

		glassID := ledger.GlassID(res.Category)
		for _, d := range res.Drinks {
			rec.Entries = append(rec.Entries, &model.CatalogEntry{
				ID:      uint64(len(rec.Entries) + 1),
				Drink:   d.Name,
				APIID:   d.APIID,
				Glass:   res.Category,
				DrinkID: ledger.DrinkID(d.Name),
				GlassID: glassID,
			})
		}
	}

	rec.GlassIDs = ledger.glassIDs
	rec.DrinkIDs = ledger.drinkIDs
	return rec
}

func lookupRemediation(res CategoryResult, source string) model.Remediation {
	detail, _ := json.Marshal(map[string]string{"error": res.Err.Error()})
	return model.Remediation{
		Key:    res.Category,
		Cause:  lookupCause(res.Err),
		Source: source,
		Detail: datatypes.JSON(detail),
	}
}

func lookupCause(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return model.CauseLookupTimeout
	case errors.Is(err, adapter.ErrMalformedResponse):
		return model.CauseAPILabelMismatch
	case errors.Is(err, adapter.ErrNoDrinks):
		return model.CauseNoDrinks
	default:
		return model.CauseLookupFailed
	}
}
