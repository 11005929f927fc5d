package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/models"
)

// StockEntryResource handles REST-style interactions with the stock worksheet.
func StockEntryResource(w http.ResponseWriter, r *http.Request) {
	if !resourceReady(w, r) {
		return
	}

	row, collection, ok := resourceTarget(w, r, "/app/api/stock-entries")
	if !ok {
		return
	}

	if collection {
		switch r.Method {
		case http.MethodGet:
			listStockEntries(w, r)
		case http.MethodPost:
			createStockEntry(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		updateStockEntry(w, r, row)
	case http.MethodDelete:
		handleRowDelete(w, r, "stock-entries", row, repository.DeleteStockEntry)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listStockEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, warnings, err := repository.StockEntries(ctx)
	if err != nil {
		writeStoreError(w, r, err, "stock-entries")
		return
	}
	logRowWarnings(ctx, "stock-entries", warnings)

	q := r.URL.Query()
	pigmentID := strings.TrimSpace(q.Get("pigment_id"))
	kind := strings.TrimSpace(q.Get("kind"))
	if pigmentID != "" || kind != "" {
		filtered := make([]models.StockEntry, 0, len(entries))
		for _, entry := range entries {
			if pigmentID != "" && strings.TrimSpace(entry.PigmentID) != pigmentID {
				continue
			}
			if kind != "" && !strings.EqualFold(strings.TrimSpace(entry.Kind), kind) {
				continue
			}
			filtered = append(filtered, entry)
		}
		entries = filtered
	}

	writeJSON(w, http.StatusOK, listResponse{Items: entries, Warnings: warnings})
}

func createStockEntry(w http.ResponseWriter, r *http.Request) {
	var payload models.StockEntry
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid stock entry payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.CreateStockEntry(r.Context(), payload); err != nil {
		writeStoreError(w, r, err, "stock-entries")
		return
	}

	resetFormState(r, "stock-entries")
	writeJSON(w, http.StatusCreated, payload)
}

func updateStockEntry(w http.ResponseWriter, r *http.Request, row int) {
	var payload models.StockEntry
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid stock entry payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.UpdateStockEntry(r.Context(), row, payload); err != nil {
		writeStoreError(w, r, err, "stock-entries")
		return
	}

	resetFormState(r, "stock-entries")
	writeJSON(w, http.StatusOK, payload)
}
