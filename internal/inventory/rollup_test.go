package inventory

import (
	"testing"
	"time"

	"pigmento/models"
)

func TestRollupPigmentBalancesOpeningReceiptsAndUsage(t *testing.T) {
	t.Parallel()

	entries := []models.StockEntry{
		{Kind: models.StockKindInitial, PigmentID: "118", Date: day(2024, time.January, 1), Quantity: 500, Unit: "g"},
		{Kind: models.StockKindReceipt, PigmentID: "118", Date: day(2024, time.January, 20), Quantity: 1, Unit: "kg"},
	}
	recipes := []models.Recipe{
		{
			Code: "125",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "118", Weight: 2},
			},
		},
	}
	orders := []models.ProductionOrder{
		{
			RecipeCode: "125",
			ProducedAt: day(2024, time.February, 1),
			Packs:      [models.MaxPacks]models.PackSpec{{Weight: 100, Count: 1}},
		},
	}

	rollup := RollupPigment("118", entries, orders, recipes, time.Time{}, day(2024, time.March, 1))
	if rollup.Opening != 500 {
		t.Fatalf("opening = %v, want 500", rollup.Opening)
	}
	if rollup.Receipts != 1000 {
		t.Fatalf("receipts = %v, want 1000", rollup.Receipts)
	}
	if rollup.Usage != 200 {
		t.Fatalf("usage = %v, want 200", rollup.Usage)
	}
	if rollup.Final != 1300 {
		t.Fatalf("final = %v, want 500 + 1000 - 200", rollup.Final)
	}
	if !rollup.Start.Equal(day(2024, time.January, 1)) {
		t.Fatalf("effective start = %v, want the initial record's date", rollup.Start)
	}
}

func TestRollupPigmentLatestInitialWins(t *testing.T) {
	t.Parallel()

	entries := []models.StockEntry{
		{Kind: models.StockKindInitial, PigmentID: "204", Date: day(2023, time.July, 1), Quantity: 90, Unit: "kg"},
		{Kind: models.StockKindInitial, PigmentID: "204", Date: day(2024, time.January, 1), Quantity: 40, Unit: "kg"},
		{Kind: models.StockKindInitial, PigmentID: "204", Date: day(2024, time.June, 1), Quantity: 75, Unit: "kg"},
		{Kind: models.StockKindReceipt, PigmentID: "204", Date: day(2023, time.December, 1), Quantity: 5, Unit: "kg"},
	}

	// an initial dated after the query end is ignored, the most recent one
	// at or before the end replaces the caller's start date
	rollup := RollupPigment("204", entries, nil, nil, day(2023, time.January, 1), day(2024, time.March, 31))
	if rollup.Opening != 40000 {
		t.Fatalf("opening = %v, want the 2024-01-01 snapshot", rollup.Opening)
	}
	if !rollup.Start.Equal(day(2024, time.January, 1)) {
		t.Fatalf("effective start = %v", rollup.Start)
	}
	if rollup.Receipts != 0 {
		t.Fatalf("receipts before the opening snapshot must not count, got %v", rollup.Receipts)
	}
}

func TestRollupPigmentWithoutInitialFallsBackToActivity(t *testing.T) {
	t.Parallel()

	entries := []models.StockEntry{
		{Kind: models.StockKindReceipt, PigmentID: "330", Date: day(2024, time.February, 10), Quantity: 10, Unit: "kg"},
	}
	recipes := []models.Recipe{
		{
			Code: "240",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "330", Weight: 10},
			},
		},
	}
	orders := []models.ProductionOrder{
		{
			RecipeCode: "240",
			ProducedAt: day(2024, time.January, 15),
			Packs:      [models.MaxPacks]models.PackSpec{{Weight: 10, Count: 1}},
		},
	}

	rollup := RollupPigment("330", entries, orders, recipes, time.Time{}, day(2024, time.March, 1))
	if rollup.Opening != 0 {
		t.Fatalf("opening = %v, want 0 without an initial record", rollup.Opening)
	}
	if !rollup.Start.Equal(day(2024, time.January, 15)) {
		t.Fatalf("effective start = %v, want the first order date", rollup.Start)
	}
	if rollup.Receipts != 10000 {
		t.Fatalf("receipts = %v", rollup.Receipts)
	}
	if rollup.Final != 10000-100 {
		t.Fatalf("final = %v", rollup.Final)
	}
}

func TestExcludedFromSummary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code string
		want bool
	}{
		{"101", true},
		{"2001", true},
		{"330001", true},
		{"01", true},
		{"118", false},
		{"204", false},
		{"MB-40", false},
		{" 101 ", true},
		{"0110", false},
	}
	for _, tc := range cases {
		if got := ExcludedFromSummary(tc.code); got != tc.want {
			t.Errorf("ExcludedFromSummary(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestRollupSummarySkipsExcludedCodes(t *testing.T) {
	t.Parallel()

	pigments := []models.Pigment{
		{Code: "118"},
		{Code: "101"},
		{Code: "204"},
	}
	entries := []models.StockEntry{
		{Kind: models.StockKindInitial, PigmentID: "118", Date: day(2024, time.January, 1), Quantity: 5, Unit: "kg"},
	}

	rollups := RollupSummary(pigments, entries, nil, nil, time.Time{}, day(2024, time.June, 1))
	if len(rollups) != 2 {
		t.Fatalf("rollups = %d, want the excluded code dropped", len(rollups))
	}
	for _, rollup := range rollups {
		if rollup.PigmentID == "101" {
			t.Fatal("code 101 must not appear in the summary")
		}
	}
}

func TestFormatGrams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		grams float64
		want  string
	}{
		{1000, "1 kg"},
		{1500, "1.50 kg"},
		{1800, "1.80 kg"},
		{73200, "73.20 kg"},
		{25000, "25 kg"},
		{999, "999 g"},
		{250.5, "250.50 g"},
		{0, "0 g"},
		{0.4, "0.40 g"},
	}
	for _, tc := range cases {
		if got := FormatGrams(tc.grams); got != tc.want {
			t.Errorf("FormatGrams(%v) = %q, want %q", tc.grams, got, tc.want)
		}
	}
}
