package models

import (
	"strings"
	"time"
)

// MaxComponents is the number of pigment slots a recipe row carries.
const MaxComponents = 8

// Recipe categories and statuses as stored in the recipe worksheet.
const (
	RecipeCategoryOriginal   = "original"
	RecipeCategoryAdditional = "additional"

	RecipeStatusActive   = "active"
	RecipeStatusInactive = "inactive"
)

// RecipeComponent pairs a pigment code with its weight per produced unit.
type RecipeComponent struct {
	PigmentID string  `json:"pigment_id"`
	Weight    float64 `json:"weight"`
}

// Recipe is a color formula. Original recipes stand alone; additional
// recipes overlay an original recipe named by Parent and are summed with it
// during usage and inventory calculations.
type Recipe struct {
	Code          string                         `json:"code"`
	Category      string                         `json:"category"`
	Status        string                         `json:"status"`
	Parent        string                         `json:"parent,omitempty"`
	Customer      string                         `json:"customer"`
	ColorName     string                         `json:"color_name"`
	Pantone       string                         `json:"pantone"`
	Unit          string                         `json:"unit"`
	NetWeight     float64                        `json:"net_weight"`
	NetWeightUnit string                         `json:"net_weight_unit"`
	Components    [MaxComponents]RecipeComponent `json:"components"`
	TotalCategory string                         `json:"total_category"`
	Notes         string                         `json:"notes"`
	CreatedAt     time.Time                      `json:"created_at"`
}

// ComponentIndex returns the first slot listing the pigment, or -1. Pigment
// codes are matched by exact string equality after trimming; leading zeros
// are deliberately not stripped here.
func (r Recipe) ComponentIndex(pigmentID string) int {
	target := strings.TrimSpace(pigmentID)
	if target == "" {
		return -1
	}
	for i, component := range r.Components {
		if strings.TrimSpace(component.PigmentID) == target {
			return i
		}
	}
	return -1
}

// ListsPigment reports whether any component slot references the pigment.
func (r Recipe) ListsPigment(pigmentID string) bool {
	return r.ComponentIndex(pigmentID) >= 0
}

// IsAdditional reports whether the recipe overlays a parent recipe.
func (r Recipe) IsAdditional() bool {
	return strings.EqualFold(strings.TrimSpace(r.Category), RecipeCategoryAdditional)
}

// NormalizeRecipeCode trims the code and strips leading zeros, so "0125" and
// "125" identify the same original recipe. A code of all zeros collapses to
// "0". Pigment codes are never normalized this way.
func NormalizeRecipeCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return ""
	}
	stripped := strings.TrimLeft(trimmed, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}

// ValidRecipeCategory reports whether the value names a known recipe category.
func ValidRecipeCategory(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case RecipeCategoryOriginal, RecipeCategoryAdditional:
		return true
	}
	return false
}

// ValidRecipeStatus reports whether the value names a known recipe status.
func ValidRecipeStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case RecipeStatusActive, RecipeStatusInactive:
		return true
	}
	return false
}
