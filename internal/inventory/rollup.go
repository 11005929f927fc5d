package inventory

import (
	"strings"
	"time"

	"pigmento/models"
)

// Rollup is the computed running inventory of one pigment over its effective
// interval: opening balance plus receipts minus computed usage.
type Rollup struct {
	PigmentID string    `json:"pigment_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Opening   float64   `json:"opening_grams"`
	Receipts  float64   `json:"receipt_grams"`
	Usage     float64   `json:"usage_grams"`
	Final     float64   `json:"final_grams"`
}

// RollupPigment derives the running inventory for one pigment. The most
// recent "initial" stock record dated at or before the query end always
// takes precedence as the true opening point: its own date replaces the
// caller's start date. Without an initial record the opening balance is zero
// and, when no explicit start is given, the effective start falls back to
// the earliest of the first receipt and the first order touching the
// pigment's recipes.
func RollupPigment(pigmentID string, entries []models.StockEntry, orders []models.ProductionOrder, recipes []models.Recipe, start, end time.Time) Rollup {
	target := strings.TrimSpace(pigmentID)
	effStart := normalizeDate(start)
	endDay := normalizeDate(end)

	opening := 0.0
	var openingDate time.Time
	for _, entry := range entries {
		if !entry.IsInitial() || strings.TrimSpace(entry.PigmentID) != target {
			continue
		}
		day := normalizeDate(entry.Date)
		if day.IsZero() {
			continue
		}
		if !endDay.IsZero() && day.After(endDay) {
			continue
		}
		if openingDate.IsZero() || day.After(openingDate) {
			openingDate = day
			opening = entry.Grams()
		}
	}

	if !openingDate.IsZero() {
		effStart = openingDate
	} else if effStart.IsZero() {
		effStart = fallbackStart(target, entries, orders, recipes)
	}

	receipts := 0.0
	for _, entry := range entries {
		if entry.IsInitial() || strings.TrimSpace(entry.PigmentID) != target {
			continue
		}
		if withinInterval(entry.Date, effStart, endDay) {
			receipts += entry.Grams()
		}
	}

	usage := PigmentUsage(target, orders, recipes, effStart, endDay)

	return Rollup{
		PigmentID: target,
		Start:     effStart,
		End:       endDay,
		Opening:   opening,
		Receipts:  receipts,
		Usage:     usage,
		Final:     opening + receipts - usage,
	}
}

// fallbackStart picks the earliest of the first receipt date and the first
// production date of an order drawing on a recipe that lists the pigment.
func fallbackStart(pigmentID string, entries []models.StockEntry, orders []models.ProductionOrder, recipes []models.Recipe) time.Time {
	var earliest time.Time
	consider := func(day time.Time) {
		if day.IsZero() {
			return
		}
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}

	for _, entry := range entries {
		if entry.IsInitial() || strings.TrimSpace(entry.PigmentID) != pigmentID {
			continue
		}
		consider(normalizeDate(entry.Date))
	}

	for _, order := range orders {
		if order.ProducedAt.IsZero() {
			continue
		}
		for _, row := range recipeRowsFor(order, recipes) {
			if row.ListsPigment(pigmentID) {
				consider(normalizeDate(order.ProducedAt))
				break
			}
		}
	}

	return earliest
}

// ExcludedFromSummary reports whether the pigment code is suppressed from
// rollup summary output. Codes ending in "01", "001", or "0001" mark
// control/parent entries in the business's numbering scheme; the rule is
// reproduced verbatim.
func ExcludedFromSummary(pigmentID string) bool {
	code := strings.TrimSpace(pigmentID)
	return strings.HasSuffix(code, "01") || strings.HasSuffix(code, "001") || strings.HasSuffix(code, "0001")
}

// RollupSummary derives running inventory for every pigment in the catalog,
// skipping codes excluded by the summary filter.
func RollupSummary(pigments []models.Pigment, entries []models.StockEntry, orders []models.ProductionOrder, recipes []models.Recipe, start, end time.Time) []Rollup {
	result := make([]Rollup, 0, len(pigments))
	for _, pigment := range pigments {
		if ExcludedFromSummary(pigment.Code) {
			continue
		}
		result = append(result, RollupPigment(pigment.Code, entries, orders, recipes, start, end))
	}
	return result
}
