package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/models"
)

// PigmentResource handles REST-style interactions with the pigment worksheet.
func PigmentResource(w http.ResponseWriter, r *http.Request) {
	if !resourceReady(w, r) {
		return
	}

	row, collection, ok := resourceTarget(w, r, "/app/api/pigments")
	if !ok {
		return
	}

	if collection {
		switch r.Method {
		case http.MethodGet:
			listPigments(w, r)
		case http.MethodPost:
			createPigment(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		updatePigment(w, r, row)
	case http.MethodDelete:
		handleRowDelete(w, r, "pigments", row, repository.DeletePigment)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listPigments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pigments, warnings, err := repository.Pigments(ctx)
	if err != nil {
		writeStoreError(w, r, err, "pigments")
		return
	}
	logRowWarnings(ctx, "pigments", warnings)

	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	category := strings.TrimSpace(q.Get("category"))
	if query != "" || category != "" {
		filtered := make([]models.Pigment, 0, len(pigments))
		for _, pigment := range pigments {
			if query != "" && !containsFold(pigment.Code, query) && !containsFold(pigment.Name, query) && !containsFold(pigment.ColorIndex, query) {
				continue
			}
			if category != "" && !strings.EqualFold(strings.TrimSpace(pigment.Category), category) {
				continue
			}
			filtered = append(filtered, pigment)
		}
		pigments = filtered
	}

	writeJSON(w, http.StatusOK, listResponse{Items: pigments, Warnings: warnings})
}

func createPigment(w http.ResponseWriter, r *http.Request) {
	var payload models.Pigment
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid pigment payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.CreatePigment(r.Context(), payload); err != nil {
		writeStoreError(w, r, err, "pigments")
		return
	}

	resetFormState(r, "pigments")
	writeJSON(w, http.StatusCreated, payload)
}

func updatePigment(w http.ResponseWriter, r *http.Request, row int) {
	var payload models.Pigment
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid pigment payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.UpdatePigment(r.Context(), row, payload); err != nil {
		writeStoreError(w, r, err, "pigments")
		return
	}

	resetFormState(r, "pigments")
	writeJSON(w, http.StatusOK, payload)
}
