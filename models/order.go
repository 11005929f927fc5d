package models

import "time"

// MaxPacks is the number of pack definitions a production order carries.
const MaxPacks = 4

// PackSpec describes one packaging line of a production order: the weight of
// a single pack in kilograms and how many packs were produced.
type PackSpec struct {
	Weight float64 `json:"weight"`
	Count  float64 `json:"count"`
}

// ProductionOrder records one manufacturing run of a recipe. The pigment
// slots are a denormalized copy of the recipe composition at order time.
type ProductionOrder struct {
	Number     string                `json:"number"`
	ProducedAt time.Time             `json:"produced_at"`
	RecipeCode string                `json:"recipe_code"`
	ColorName  string                `json:"color_name"`
	Customer   string                `json:"customer"`
	CreatedAt  time.Time             `json:"created_at"`
	Pantone    string                `json:"pantone"`
	Packs      [MaxPacks]PackSpec    `json:"packs"`
	PigmentIDs [MaxComponents]string `json:"pigment_ids"`
	Notes      string                `json:"notes"`
}

// TotalPackedWeight sums pack weight times pack count across all pack slots.
func (o ProductionOrder) TotalPackedWeight() float64 {
	total := 0.0
	for _, pack := range o.Packs {
		total += pack.Weight * pack.Count
	}
	return total
}
