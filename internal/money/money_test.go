package money

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.675", "2.68"},
		{"2.665", "2.66"},
		{"2.685", "2.68"},
		{"1", "1"},
		{" 12.5 ", "12.5"},
		{"0.005", "0"},
		{"0.015", "0.02"},
		{"3.14159", "3.14"},
		{"-1.235", "-1.24"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := RoundCost(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRoundCostDiffersFromBinaryRounding(t *testing.T) {
	// 2.675 is stored as 2.67499999..., so formatting the binary value rounds down.
	naive := strconv.FormatFloat(2.675, 'f', 2, 64)
	assert.Equal(t, "2.67", naive)

	got, err := RoundCost("2.675")
	require.NoError(t, err)
	assert.Equal(t, "2.68", got.StringFixed(Places))
	assert.NotEqual(t, naive, got.StringFixed(Places))

	stored, err := Normalize("2.675")
	require.NoError(t, err)
	assert.Equal(t, 2.68, stored)
}

func TestRoundFloat(t *testing.T) {
	got, err := RoundFloat(2.675)
	require.NoError(t, err)
	assert.Equal(t, "2.68", got.StringFixed(Places))

	got, err = RoundFloat(7)
	require.NoError(t, err)
	assert.Equal(t, "7.00", got.StringFixed(Places))
}

func TestRoundCostRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1,50"} {
		_, err := RoundCost(in)
		assert.Error(t, err, in)
	}
}
