package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"BarInventory/internal/model"
)

var (
	// ErrNoDrinks means the catalog answered but listed nothing for the category
	// (`"drinks": null`, `"None Found"` or an empty list).
	ErrNoDrinks = errors.New("no drinks returned")
	// ErrMalformedResponse means the answer could not be decoded as a drink list.
	ErrMalformedResponse = errors.New("malformed catalog response")
	// ErrUnknownProvider is returned by New for unregistered provider names.
	ErrUnknownProvider = errors.New("unknown catalog provider")
)

// DecodeDrinks parses a filter.php body into (name, id) pairs, in response order.
func DecodeDrinks(body []byte) ([]model.CatalogDrink, error) {
	var resp model.CocktailDBFilterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return decodeDrinkList(resp.Drinks)
}

func decodeDrinkList(raw json.RawMessage) ([]model.CatalogDrink, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNoDrinks
	}
	if trimmed[0] == '"' {
		// the API answers {"drinks":"None Found"} for unknown glasses
		return nil, ErrNoDrinks
	}

	var drinks []model.CocktailDBDrink
	if err := json.Unmarshal(trimmed, &drinks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(drinks) == 0 {
		return nil, ErrNoDrinks
	}

	out := make([]model.CatalogDrink, 0, len(drinks))
	for i, d := range drinks {
		name := strings.TrimSpace(d.StrDrink)
		if name == "" {
			return nil, fmt.Errorf("%w: drink %d has no name", ErrMalformedResponse, i)
		}
		out = append(out, model.CatalogDrink{Name: name, APIID: strings.TrimSpace(d.IDDrink)})
	}
	return out, nil
}
