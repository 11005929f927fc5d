package pages

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"pigmento/models"
)

// RecipeFilters captures the query-page search fields for the recipe table.
type RecipeFilters struct {
	Code     string
	Customer string
	Color    string
	Pantone  string
}

// RecipeFiltersFromRequest extracts recipe filters from the request query.
func RecipeFiltersFromRequest(r *http.Request) RecipeFilters {
	q := r.URL.Query()
	return RecipeFilters{
		Code:     strings.TrimSpace(q.Get("code")),
		Customer: strings.TrimSpace(q.Get("customer")),
		Color:    strings.TrimSpace(q.Get("color")),
		Pantone:  strings.TrimSpace(q.Get("pantone")),
	}
}

// Empty reports whether no filter field is set.
func (f RecipeFilters) Empty() bool {
	return f.Code == "" && f.Customer == "" && f.Color == "" && f.Pantone == ""
}

func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), "")
}

// matchesColor compares color names ignoring case and interior whitespace,
// so "Sky  Blue" finds "skyblue".
func matchesColor(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(collapseWhitespace(haystack)),
		strings.ToLower(collapseWhitespace(needle)),
	)
}

// FilterRecipes returns the recipes matching every supplied filter field.
func FilterRecipes(recipes []models.Recipe, filters RecipeFilters) []models.Recipe {
	if filters.Empty() {
		return recipes
	}

	matched := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if !containsFold(recipe.Code, filters.Code) {
			continue
		}
		if !containsFold(recipe.Customer, filters.Customer) {
			continue
		}
		if !matchesColor(recipe.ColorName, filters.Color) {
			continue
		}
		if !containsFold(recipe.Pantone, filters.Pantone) {
			continue
		}
		matched = append(matched, recipe)
	}
	return matched
}

// PantoneMatch is one hit of a Pantone lookup, drawn either from the mapping
// sheet or from a recipe's Pantone field.
type PantoneMatch struct {
	Pantone        string `json:"pantone"`
	RecipeCode     string `json:"recipe_code"`
	Customer       string `json:"customer"`
	MaterialNumber string `json:"material_number,omitempty"`
	Source         string `json:"source"`
}

// SearchPantone scans both the Pantone mapping sheet and the recipe table
// for entries whose Pantone code contains the query.
func SearchPantone(mappings []models.PantoneMapping, recipes []models.Recipe, query string) []PantoneMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := make([]PantoneMatch, 0)
	for _, mapping := range mappings {
		if containsFold(mapping.Pantone, query) {
			matches = append(matches, PantoneMatch{
				Pantone:        mapping.Pantone,
				RecipeCode:     mapping.RecipeCode,
				Customer:       mapping.Customer,
				MaterialNumber: mapping.MaterialNumber,
				Source:         "mapping",
			})
		}
	}
	for _, recipe := range recipes {
		if recipe.Pantone != "" && containsFold(recipe.Pantone, query) {
			matches = append(matches, PantoneMatch{
				Pantone:    recipe.Pantone,
				RecipeCode: recipe.Code,
				Customer:   recipe.Customer,
				Source:     "recipe",
			})
		}
	}
	return matches
}

// CrossMatch pairs a recipe with the date it was most recently produced.
// LastProduced is zero when no order references the recipe.
type CrossMatch struct {
	Recipe       models.Recipe `json:"recipe"`
	LastProduced time.Time     `json:"last_produced,omitempty"`
}

// MaxCrossPigments bounds the pigment set of a cross query.
const MaxCrossPigments = 5

// CrossQuery returns the recipes whose component set contains every one of
// the supplied pigment ids, joined with the most recent production date from
// the order table. Results are sorted by recipe code.
func CrossQuery(recipes []models.Recipe, orders []models.ProductionOrder, pigmentIDs []string) []CrossMatch {
	wanted := make([]string, 0, len(pigmentIDs))
	for _, id := range pigmentIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed != "" {
			wanted = append(wanted, trimmed)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	matches := make([]CrossMatch, 0)
	for _, recipe := range recipes {
		all := true
		for _, id := range wanted {
			if !recipe.ListsPigment(id) {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		match := CrossMatch{Recipe: recipe}
		target := strings.TrimSpace(recipe.Code)
		for _, order := range orders {
			if strings.TrimSpace(order.RecipeCode) != target {
				continue
			}
			if order.ProducedAt.After(match.LastProduced) {
				match.LastProduced = order.ProducedAt
			}
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Recipe.Code < matches[j].Recipe.Code
	})
	return matches
}
