package model

import "encoding/json"

// CocktailDBFilterResponse is the body of GET /filter.php?g=<glass>.
// Drinks is kept raw: the API answers `null` or the string "None Found" for unknown glasses.
type CocktailDBFilterResponse struct {
	Drinks json.RawMessage `json:"drinks"`
}

// CocktailDBDrink is one element of the drinks list.
type CocktailDBDrink struct {
	StrDrink      string `json:"strDrink"`
	StrDrinkThumb string `json:"strDrinkThumb"`
	IDDrink       string `json:"idDrink"`
}
