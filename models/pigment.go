package models

import "strings"

// Pigment categories as stored in the pigment worksheet.
const (
	PigmentCategoryPigment     = "pigment"
	PigmentCategoryMasterbatch = "masterbatch"
	PigmentCategoryAdditive    = "additive"
)

// Pigment is a colorant or additive consumed by recipes.
type Pigment struct {
	Code          string `json:"code"`
	ColorIndex    string `json:"color_index"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	PackagingUnit string `json:"packaging_unit"`
	Notes         string `json:"notes"`
}

// ValidPigmentCategory reports whether the supplied value is a known category.
func ValidPigmentCategory(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case PigmentCategoryPigment, PigmentCategoryMasterbatch, PigmentCategoryAdditive:
		return true
	}
	return false
}

// NormalizePigmentCategory lowers and trims the category, falling back to
// the plain pigment category for unknown values.
func NormalizePigmentCategory(value string) string {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if ValidPigmentCategory(cleaned) {
		return cleaned
	}
	return PigmentCategoryPigment
}
