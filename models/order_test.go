package models

import "testing"

func TestTotalPackedWeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		packs [MaxPacks]PackSpec
		want  float64
	}{
		{"no packs", [MaxPacks]PackSpec{}, 0},
		{"single slot", [MaxPacks]PackSpec{{Weight: 25, Count: 4}}, 100},
		{"multiple slots", [MaxPacks]PackSpec{{Weight: 20, Count: 2}, {Weight: 5, Count: 8}}, 80},
		{"zero count contributes nothing", [MaxPacks]PackSpec{{Weight: 25, Count: 0}, {Weight: 10, Count: 1}}, 10},
		{"fractional packs", [MaxPacks]PackSpec{{Weight: 12.5, Count: 3}}, 37.5},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			order := ProductionOrder{Packs: tc.packs}
			if got := order.TotalPackedWeight(); got != tc.want {
				t.Fatalf("TotalPackedWeight() = %v, want %v", got, tc.want)
			}
		})
	}
}
