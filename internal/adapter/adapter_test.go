package adapter

import (
	"testing"

	"BarInventory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDrinks(t *testing.T) {
	body := []byte(`{"drinks":[
		{"strDrink":"Martini","strDrinkThumb":"https://x/1.jpg","idDrink":"11000"},
		{"strDrink":" Daiquiri ","idDrink":"11001"}
	]}`)

	got, err := DecodeDrinks(body)
	require.NoError(t, err)
	assert.Equal(t, []model.CatalogDrink{
		{Name: "Martini", APIID: "11000"},
		{Name: "Daiquiri", APIID: "11001"},
	}, got)
}

func TestDecodeDrinksFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"null drinks", `{"drinks":null}`, ErrNoDrinks},
		{"missing drinks", `{}`, ErrNoDrinks},
		{"none found", `{"drinks":"None Found"}`, ErrNoDrinks},
		{"empty list", `{"drinks":[]}`, ErrNoDrinks},
		{"not json", `<html>oops</html>`, ErrMalformedResponse},
		{"empty body", ``, ErrMalformedResponse},
		{"wrong shape", `{"drinks":{"strDrink":"Martini"}}`, ErrMalformedResponse},
		{"nameless drink", `{"drinks":[{"idDrink":"1"}]}`, ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDrinks([]byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
