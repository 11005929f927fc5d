package models

// PantoneMapping links a Pantone color code to the recipe that reproduces it.
type PantoneMapping struct {
	Pantone        string `json:"pantone"`
	RecipeCode     string `json:"recipe_code"`
	Customer       string `json:"customer"`
	MaterialNumber string `json:"material_number"`
}
