package handlers

import (
	"encoding/json"
	"net/http"

	applog "pigmento/internal/log"
	"pigmento/internal/views/pages"
	"pigmento/models"
)

// RecipeResource handles REST-style interactions with the recipe worksheet.
// The search and cross-query endpoints live under the same prefix.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if !resourceReady(w, r) {
		return
	}

	switch r.URL.Path {
	case "/app/api/recipes/search":
		searchRecipes(w, r)
		return
	case "/app/api/recipes/cross":
		crossQueryRecipes(w, r)
		return
	}

	row, collection, ok := resourceTarget(w, r, "/app/api/recipes")
	if !ok {
		return
	}

	if collection {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		updateRecipe(w, r, row)
	case http.MethodDelete:
		handleRowDelete(w, r, "recipes", row, repository.DeleteRecipe)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipes, warnings, err := repository.Recipes(ctx)
	if err != nil {
		writeStoreError(w, r, err, "recipes")
		return
	}
	logRowWarnings(ctx, "recipes", warnings)

	filters := pages.RecipeFiltersFromRequest(r)
	writeJSON(w, http.StatusOK, listResponse{Items: pages.FilterRecipes(recipes, filters), Warnings: warnings})
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	var payload models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.CreateRecipe(r.Context(), payload); err != nil {
		writeStoreError(w, r, err, "recipes")
		return
	}

	resetFormState(r, "recipes")
	writeJSON(w, http.StatusCreated, payload)
}

func updateRecipe(w http.ResponseWriter, r *http.Request, row int) {
	var payload models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid recipe payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.UpdateRecipe(r.Context(), row, payload); err != nil {
		writeStoreError(w, r, err, "recipes")
		return
	}

	resetFormState(r, "recipes")
	writeJSON(w, http.StatusOK, payload)
}

func searchRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	recipes, warnings, err := repository.Recipes(ctx)
	if err != nil {
		writeStoreError(w, r, err, "recipes")
		return
	}
	logRowWarnings(ctx, "recipes", warnings)

	filters := pages.RecipeFiltersFromRequest(r)
	writeJSON(w, http.StatusOK, listResponse{Items: pages.FilterRecipes(recipes, filters)})
}

func crossQueryRecipes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ids := r.URL.Query()["pigment_id"]
	if len(ids) == 0 {
		writeJSONError(w, http.StatusBadRequest, "supply at least one pigment_id")
		return
	}
	if len(ids) > pages.MaxCrossPigments {
		writeJSONError(w, http.StatusBadRequest, "at most 5 pigment ids per query")
		return
	}

	ctx := r.Context()
	recipes, recipeWarnings, err := repository.Recipes(ctx)
	if err != nil {
		writeStoreError(w, r, err, "recipes")
		return
	}
	orders, orderWarnings, err := repository.Orders(ctx)
	if err != nil {
		writeStoreError(w, r, err, "orders")
		return
	}
	logRowWarnings(ctx, "recipes", recipeWarnings)
	logRowWarnings(ctx, "orders", orderWarnings)

	writeJSON(w, http.StatusOK, listResponse{Items: pages.CrossQuery(recipes, orders, ids)})
}
