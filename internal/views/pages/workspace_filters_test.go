package pages

import (
	"net/http/httptest"
	"testing"
	"time"

	"pigmento/models"
)

func sampleRecipes() []models.Recipe {
	return []models.Recipe{
		{
			Code:      "125",
			Customer:  "NORFIL",
			ColorName: "Brick Red",
			Pantone:   "7599 C",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "118", Weight: 18},
				{PigmentID: "330", Weight: 6},
			},
		},
		{
			Code:      "240",
			Customer:  "VELPAK",
			ColorName: "Ocean Blue",
			Pantone:   "3015 C",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "204", Weight: 12},
				{PigmentID: "330", Weight: 10},
			},
		},
	}
}

func TestRecipeFiltersFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/app/api/recipes/search?code=12&customer=nor&color=brick%20red&pantone=7599", nil)
	filters := RecipeFiltersFromRequest(req)
	if filters.Code != "12" || filters.Customer != "nor" || filters.Color != "brick red" || filters.Pantone != "7599" {
		t.Fatalf("unexpected filters: %+v", filters)
	}
	if filters.Empty() {
		t.Fatal("expected filters to be non-empty")
	}
}

func TestFilterRecipesMatchesAllFields(t *testing.T) {
	t.Parallel()

	recipes := sampleRecipes()

	tests := []struct {
		name    string
		filters RecipeFilters
		want    []string
	}{
		{"empty filters return all", RecipeFilters{}, []string{"125", "240"}},
		{"code substring", RecipeFilters{Code: "24"}, []string{"240"}},
		{"customer case-insensitive", RecipeFilters{Customer: "norfil"}, []string{"125"}},
		{"color ignores whitespace", RecipeFilters{Color: "brickred"}, []string{"125"}},
		{"color with extra spaces", RecipeFilters{Color: "ocean   blue"}, []string{"240"}},
		{"pantone substring", RecipeFilters{Pantone: "3015"}, []string{"240"}},
		{"conjunction of fields", RecipeFilters{Customer: "VEL", Color: "blue"}, []string{"240"}},
		{"no match", RecipeFilters{Code: "999"}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FilterRecipes(recipes, tt.filters)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d recipes, want %d", len(got), len(tt.want))
			}
			for i, code := range tt.want {
				if got[i].Code != code {
					t.Fatalf("result %d = %q, want %q", i, got[i].Code, code)
				}
			}
		})
	}
}

func TestSearchPantoneCoversMappingsAndRecipes(t *testing.T) {
	t.Parallel()

	mappings := []models.PantoneMapping{
		{Pantone: "7599 C", RecipeCode: "125", Customer: "NORFIL", MaterialNumber: "M-10118"},
	}

	matches := SearchPantone(mappings, sampleRecipes(), "7599")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Source != "mapping" || matches[1].Source != "recipe" {
		t.Fatalf("unexpected sources: %q, %q", matches[0].Source, matches[1].Source)
	}

	if got := SearchPantone(mappings, sampleRecipes(), "  "); got != nil {
		t.Fatalf("expected nil for blank query, got %v", got)
	}
}

func TestCrossQueryRequiresEveryPigment(t *testing.T) {
	t.Parallel()

	recipes := sampleRecipes()
	orders := []models.ProductionOrder{
		{Number: "PO-1", RecipeCode: "240", ProducedAt: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{Number: "PO-2", RecipeCode: "240", ProducedAt: time.Date(2024, time.April, 9, 0, 0, 0, 0, time.UTC)},
	}

	matches := CrossQuery(recipes, orders, []string{"204", "330"})
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Recipe.Code != "240" {
		t.Fatalf("matched recipe = %q", matches[0].Recipe.Code)
	}
	if !matches[0].LastProduced.Equal(time.Date(2024, time.April, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last produced = %s", matches[0].LastProduced)
	}

	shared := CrossQuery(recipes, orders, []string{"330"})
	if len(shared) != 2 {
		t.Fatalf("expected both recipes for shared pigment, got %d", len(shared))
	}
	if shared[0].Recipe.Code != "125" {
		t.Fatalf("expected sort by code, got %q first", shared[0].Recipe.Code)
	}
	if !shared[0].LastProduced.IsZero() {
		t.Fatalf("expected zero last produced for unreferenced recipe, got %s", shared[0].LastProduced)
	}

	if got := CrossQuery(recipes, orders, []string{" ", ""}); got != nil {
		t.Fatalf("expected nil for blank pigment set, got %v", got)
	}
}
