package inventory

import (
	"fmt"
	"math"
)

// FormatGrams renders a gram total for display. Values of a kilogram or more
// are converted to kilograms rounded to two decimals; integral values drop
// their decimals entirely: 1000 -> "1 kg", 1500 -> "1.50 kg", 999 -> "999 g",
// 250.5 -> "250.50 g".
func FormatGrams(grams float64) string {
	if grams >= 1000 {
		kilos := math.Round(grams/1000*100) / 100
		if kilos == math.Trunc(kilos) {
			return fmt.Sprintf("%d kg", int64(kilos))
		}
		return fmt.Sprintf("%.2f kg", kilos)
	}
	rounded := math.Round(grams*100) / 100
	if rounded == math.Trunc(rounded) {
		return fmt.Sprintf("%d g", int64(rounded))
	}
	return fmt.Sprintf("%.2f g", rounded)
}
