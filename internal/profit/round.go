package profit

import (
	"math"
	"strconv"
)

// Round rounds x to the given number of decimals using the exact binary value
// of x and ties-to-even, which is what strconv's fixed formatting does.
// math.Round(x*100)/100 disagrees on values like 2.675.
func Round(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', decimals, 64), 64)
	if err != nil {
		return x
	}
	return r
}
