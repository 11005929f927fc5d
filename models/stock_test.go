package models

import "testing"

func TestStockEntryGrams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		entry StockEntry
		want  float64
	}{
		{"kilograms convert", StockEntry{Quantity: 50, Unit: "kg"}, 50000},
		{"uppercase unit", StockEntry{Quantity: 2, Unit: " KG "}, 2000},
		{"grams pass through", StockEntry{Quantity: 250, Unit: "g"}, 250},
		{"unknown unit treated as grams", StockEntry{Quantity: 7, Unit: "pallets"}, 7},
		{"blank unit treated as grams", StockEntry{Quantity: 12}, 12},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.entry.Grams(); got != tc.want {
				t.Fatalf("Grams() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsInitial(t *testing.T) {
	t.Parallel()

	if !(StockEntry{Kind: " Initial "}).IsInitial() {
		t.Fatal("kind match must ignore case and padding")
	}
	if (StockEntry{Kind: StockKindReceipt}).IsInitial() {
		t.Fatal("receipt reported as initial")
	}
}

func TestValidStockKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{"initial", "receipt", "Initial", " RECEIPT "} {
		if !ValidStockKind(kind) {
			t.Errorf("ValidStockKind(%q) = false", kind)
		}
	}
	for _, kind := range []string{"", "correction", "usage"} {
		if ValidStockKind(kind) {
			t.Errorf("ValidStockKind(%q) = true", kind)
		}
	}
}
