// Package scaling rescales free-text ingredient quantities between serving
// counts. Quantities are opaque strings like "1 1/2 cups" or "pinch"; every
// numeric token is scaled in place and the surrounding text is preserved.
package scaling

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Fractions must come before plain numbers so "1/2" is one token, not two.
var quantityPattern = regexp.MustCompile(`\d+/\d+|\d+\.?\d*`)

// ScaleQuantity rescales every numeric token in quantity by
// targetServings/originalServings using exact rational arithmetic.
// Text without numbers ("pinch", "to taste") and empty strings are
// returned unchanged, as is any input when the servings are equal.
func ScaleQuantity(quantity string, originalServings, targetServings int) string {
	if quantity == "" || originalServings == targetServings {
		return quantity
	}

	locs := quantityPattern.FindAllStringIndex(quantity, -1)
	if locs == nil {
		return quantity
	}

	ratio := new(big.Rat).SetFrac64(int64(targetServings), int64(originalServings))

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		token := quantity[loc[0]:loc[1]]
		value, ok := new(big.Rat).SetString(token)
		if !ok {
			continue
		}
		b.WriteString(quantity[last:loc[0]])
		b.WriteString(renderQuantity(value.Mul(value, ratio)))
		last = loc[1]
	}
	b.WriteString(quantity[last:])

	return b.String()
}

// renderQuantity formats a scaled value: whole numbers as plain integers,
// everything else as a decimal trimmed to at most two places.
func renderQuantity(value *big.Rat) string {
	if value.IsInt() {
		return value.Num().String()
	}

	f, _ := value.Float64()
	if f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}

	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
