package inventory

import (
	"sort"
	"strings"
	"time"

	"pigmento/models"
)

// normalizeDate drops the time-of-day component so interval checks compare
// calendar dates only.
func normalizeDate(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	year, month, day := value.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func withinInterval(value, start, end time.Time) bool {
	if value.IsZero() {
		return false
	}
	day := normalizeDate(value)
	if !start.IsZero() && day.Before(normalizeDate(start)) {
		return false
	}
	if !end.IsZero() && day.After(normalizeDate(end)) {
		return false
	}
	return true
}

// recipeRowsFor gathers the recipe rows an order draws from: the row whose
// code matches the order's recipe, plus every additional recipe overlaying
// that code via its parent pointer. Codes are compared by exact string
// equality after trimming.
func recipeRowsFor(order models.ProductionOrder, recipes []models.Recipe) []models.Recipe {
	target := strings.TrimSpace(order.RecipeCode)
	if target == "" {
		return nil
	}
	rows := make([]models.Recipe, 0, 2)
	for _, recipe := range recipes {
		if strings.TrimSpace(recipe.Code) == target {
			rows = append(rows, recipe)
			continue
		}
		if recipe.IsAdditional() && strings.TrimSpace(recipe.Parent) == target {
			rows = append(rows, recipe)
		}
	}
	return rows
}

// PigmentUsage computes the total grams of the pigment consumed by orders
// whose production date lies inside the closed interval [start, end]. An
// order draws from its own recipe and from any additional recipes layered
// onto it; within one recipe row the first slot listing the pigment supplies
// the weight-per-unit figure. Malformed rows have been zeroed at the load
// boundary, so they contribute nothing here instead of aborting the report.
func PigmentUsage(pigmentID string, orders []models.ProductionOrder, recipes []models.Recipe, start, end time.Time) float64 {
	target := strings.TrimSpace(pigmentID)
	if target == "" {
		return 0
	}

	candidates := make(map[int]bool, len(recipes))
	for i, recipe := range recipes {
		if recipe.ListsPigment(target) {
			candidates[i] = true
		}
	}
	if len(candidates) == 0 {
		return 0
	}

	total := 0.0
	for _, order := range orders {
		if !withinInterval(order.ProducedAt, start, end) {
			continue
		}
		packed := order.TotalPackedWeight()
		if packed <= 0 {
			continue
		}
		for _, row := range recipeRowsFor(order, recipes) {
			idx := row.ComponentIndex(target)
			if idx < 0 {
				continue
			}
			total += row.Components[idx].Weight * packed
		}
	}
	return total
}

// UsageTotal is one pigment's aggregated consumption over a date range.
type UsageTotal struct {
	PigmentID string  `json:"pigment_id"`
	Grams     float64 `json:"grams"`
}

// Leaderboard aggregates per-order pigment contributions across all pigments
// referenced by any recipe, sorted descending by total grams.
func Leaderboard(orders []models.ProductionOrder, recipes []models.Recipe, start, end time.Time) []UsageTotal {
	totals := make(map[string]float64)
	for _, order := range orders {
		if !withinInterval(order.ProducedAt, start, end) {
			continue
		}
		packed := order.TotalPackedWeight()
		if packed <= 0 {
			continue
		}
		for _, row := range recipeRowsFor(order, recipes) {
			for _, component := range row.Components {
				pigment := strings.TrimSpace(component.PigmentID)
				if pigment == "" {
					continue
				}
				totals[pigment] += component.Weight * packed
			}
		}
	}

	result := make([]UsageTotal, 0, len(totals))
	for pigment, grams := range totals {
		result = append(result, UsageTotal{PigmentID: pigment, Grams: grams})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Grams != result[j].Grams {
			return result[i].Grams > result[j].Grams
		}
		return result[i].PigmentID < result[j].PigmentID
	})
	return result
}
