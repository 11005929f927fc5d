package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/views/pages"
	"pigmento/models"
)

// PantoneMappingResource handles REST-style interactions with the Pantone
// mapping worksheet.
func PantoneMappingResource(w http.ResponseWriter, r *http.Request) {
	if !resourceReady(w, r) {
		return
	}

	row, collection, ok := resourceTarget(w, r, "/app/api/pantone-mappings")
	if !ok {
		return
	}

	if collection {
		switch r.Method {
		case http.MethodGet:
			listPantoneMappings(w, r)
		case http.MethodPost:
			createPantoneMapping(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		updatePantoneMapping(w, r, row)
	case http.MethodDelete:
		handleRowDelete(w, r, "pantone-mappings", row, repository.DeletePantoneMapping)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listPantoneMappings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mappings, warnings, err := repository.PantoneMappings(ctx)
	if err != nil {
		writeStoreError(w, r, err, "pantone-mappings")
		return
	}
	logRowWarnings(ctx, "pantone-mappings", warnings)

	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		filtered := make([]models.PantoneMapping, 0, len(mappings))
		for _, mapping := range mappings {
			if containsFold(mapping.Pantone, query) || containsFold(mapping.RecipeCode, query) || containsFold(mapping.Customer, query) {
				filtered = append(filtered, mapping)
			}
		}
		mappings = filtered
	}

	writeJSON(w, http.StatusOK, listResponse{Items: mappings, Warnings: warnings})
}

func createPantoneMapping(w http.ResponseWriter, r *http.Request) {
	var payload models.PantoneMapping
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid pantone mapping payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.CreatePantoneMapping(r.Context(), payload); err != nil {
		writeStoreError(w, r, err, "pantone-mappings")
		return
	}

	resetFormState(r, "pantone-mappings")
	writeJSON(w, http.StatusCreated, payload)
}

func updatePantoneMapping(w http.ResponseWriter, r *http.Request, row int) {
	var payload models.PantoneMapping
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid pantone mapping payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.UpdatePantoneMapping(r.Context(), row, payload); err != nil {
		writeStoreError(w, r, err, "pantone-mappings")
		return
	}

	resetFormState(r, "pantone-mappings")
	writeJSON(w, http.StatusOK, payload)
}

// PantoneSearch looks a Pantone code up across the mapping sheet and the
// recipe table.
func PantoneSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !resourceReady(w, r) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSONError(w, http.StatusBadRequest, "supply a pantone query")
		return
	}

	ctx := r.Context()
	mappings, mappingWarnings, err := repository.PantoneMappings(ctx)
	if err != nil {
		writeStoreError(w, r, err, "pantone-mappings")
		return
	}
	recipes, recipeWarnings, err := repository.Recipes(ctx)
	if err != nil {
		writeStoreError(w, r, err, "recipes")
		return
	}
	logRowWarnings(ctx, "pantone-mappings", mappingWarnings)
	logRowWarnings(ctx, "recipes", recipeWarnings)

	writeJSON(w, http.StatusOK, listResponse{Items: pages.SearchPantone(mappings, recipes, query)})
}
