package pages

import (
	"context"
	"strings"
	"testing"
	"time"

	"pigmento/models"
)

func TestSnapshotSortedViewsLeaveRowOrderIntact(t *testing.T) {
	t.Parallel()

	snapshot := WorkspaceSnapshot{
		Recipes: []models.Recipe{{Code: "240"}, {Code: "125"}},
		Orders: []models.ProductionOrder{
			{Number: "PO-1", ProducedAt: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
			{Number: "PO-2", ProducedAt: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		},
	}

	sortedRecipes := snapshot.SortedRecipes()
	if sortedRecipes[0].Code != "125" {
		t.Fatalf("expected sorted recipes, got %q first", sortedRecipes[0].Code)
	}
	if snapshot.Recipes[0].Code != "240" {
		t.Fatal("sorting must not mutate worksheet row order")
	}

	sortedOrders := snapshot.SortedOrders()
	if sortedOrders[0].Number != "PO-2" {
		t.Fatalf("expected most recent order first, got %q", sortedOrders[0].Number)
	}
}

func TestSnapshotNameLookups(t *testing.T) {
	t.Parallel()

	snapshot := WorkspaceSnapshot{
		Customers: []models.Customer{{Code: "NORFIL", ShortName: "Norfil Plastics"}},
		Pigments:  []models.Pigment{{Code: "118", Name: "Iron Oxide Red"}},
	}

	if got := snapshot.CustomerName("norfil"); got != "Norfil Plastics" {
		t.Fatalf("CustomerName = %q", got)
	}
	if got := snapshot.CustomerName("UNKNOWN"); got != "UNKNOWN" {
		t.Fatalf("CustomerName fallback = %q", got)
	}
	if got := snapshot.PigmentName("118"); got != "Iron Oxide Red" {
		t.Fatalf("PigmentName = %q", got)
	}
	if got := snapshot.PigmentName("999"); got != "999" {
		t.Fatalf("PigmentName fallback = %q", got)
	}
}

func TestDashboardRendersSnapshotRows(t *testing.T) {
	t.Parallel()

	snapshot := WorkspaceSnapshot{
		Customers: []models.Customer{{Code: "NORFIL", ShortName: "Norfil Plastics"}},
		Recipes:   []models.Recipe{{Code: "125", Customer: "NORFIL", ColorName: "Brick Red", Pantone: "7599 C", Status: "active"}},
		Orders: []models.ProductionOrder{{
			Number:     "PO-2024-031",
			ProducedAt: time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC),
			RecipeCode: "125",
			Customer:   "NORFIL",
			Packs:      [models.MaxPacks]models.PackSpec{{Weight: 25, Count: 4}},
		}},
	}

	var sb strings.Builder
	if err := Dashboard(snapshot).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render dashboard: %v", err)
	}
	out := sb.String()

	for _, fragment := range []string{"Brick Red", "Norfil Plastics", "PO-2024-031", "2024-02-12", "100 kg"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in dashboard output", fragment)
		}
	}
}

func TestLoginEscapesUserInput(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := Login("<b>msg</b>", `"quoted"@example.com`).Render(context.Background(), &sb); err != nil {
		t.Fatalf("render login: %v", err)
	}
	out := sb.String()
	if strings.Contains(out, "<b>msg</b>") {
		t.Fatal("message was not escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;msg&lt;/b&gt;") {
		t.Fatalf("expected escaped message in output: %s", out)
	}
}
