package scaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleQuantityIdentity(t *testing.T) {
	inputs := []string{"", "2", "1/2", "2 cups", "pinch", "1.5 tbsp"}
	for _, q := range inputs {
		assert.Equal(t, q, ScaleQuantity(q, 4, 4))
	}
}

func TestScaleQuantityEmptyString(t *testing.T) {
	assert.Equal(t, "", ScaleQuantity("", 2, 4))
}

func TestScaleQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		original int
		target   int
		want     string
	}{
		{"integer up", "2", 4, 8, "4"},
		{"integer down", "4", 8, 4, "2"},
		{"integer down odd", "10", 4, 2, "5"},
		{"decimal to whole", "1.5", 2, 4, "3"},
		{"fraction to whole", "1/2", 4, 8, "1"},
		{"fraction to decimal", "1/4", 2, 4, "0.5"},
		{"thirds round to two places", "1/3", 1, 2, "0.67"},
		{"trailing zeros trimmed", "1.25", 1, 2, "2.5"},
		{"unit preserved", "2 cups", 4, 8, "4 cups"},
		{"grams preserved", "100 grams", 2, 4, "200 grams"},
		{"range keeps token order", "1/2 to 3/4 cup", 2, 4, "1 to 1.5 cup"},
		{"mixed number scales both tokens", "1 1/2 cups", 2, 4, "2 1 cups"},
		{"no numbers", "pinch", 2, 4, "pinch"},
		{"to taste", "to taste", 2, 4, "to taste"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleQuantity(tt.quantity, tt.original, tt.target))
		})
	}
}

func TestScaleQuantityRepeatedNumerals(t *testing.T) {
	// Both occurrences of the same numeral scale at their own position.
	assert.Equal(t, "2 cups flour, 2 cups sugar", ScaleQuantity("1 cups flour, 1 cups sugar", 2, 4))
}

func TestScaleQuantityExactThirds(t *testing.T) {
	// 1/3 tripled is exactly 1; binary floating point would drift here.
	assert.Equal(t, "1", ScaleQuantity("1/3", 1, 3))
	assert.Equal(t, "2", ScaleQuantity("2/3", 1, 3))
}
