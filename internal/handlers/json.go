package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	applog "pigmento/internal/log"
	"pigmento/internal/store"
	"pigmento/internal/workbook"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps repository failures onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	ctx := r.Context()
	var validation *store.ValidationError
	switch {
	case errors.As(err, &validation):
		applog.Debug(ctx, "rejected invalid submission", "entity", entity, "reason", validation.Error())
		writeJSONError(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, workbook.ErrRowOutOfRange):
		applog.Debug(ctx, "row target out of range", "entity", entity)
		http.NotFound(w, r)
	case errors.Is(err, workbook.ErrStaleRevision):
		applog.Debug(ctx, "worksheet changed underneath the request", "entity", entity)
		writeJSONError(w, http.StatusConflict, "the worksheet changed since it was loaded; reload and retry")
	case errors.Is(err, workbook.ErrSheetUnavailable):
		applog.Error(ctx, "workbook backend unavailable", "entity", entity, "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "worksheet backend unavailable")
	default:
		applog.Error(ctx, "worksheet operation failed", "entity", entity, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to complete the operation")
	}
}
