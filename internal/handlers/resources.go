package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
)

type listResponse struct {
	Items    any                   `json:"items"`
	Warnings []workbook.RowWarning `json:"warnings,omitempty"`
}

type deleteStatusResponse struct {
	Status string `json:"status"`
	Row    int    `json:"row"`
}

// resourceReady rejects requests when the worksheet repository is missing or
// the caller is not signed in.
func resourceReady(w http.ResponseWriter, r *http.Request) bool {
	if repository == nil {
		applog.Debug(r.Context(), "worksheet request without repository")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return false
	}
	if _, ok := currentUserID(r); !ok {
		applog.Debug(r.Context(), "worksheet request missing authenticated user")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// resourceTarget splits a resource path into collection vs row form. Row
// targets are zero-based worksheet row positions.
func resourceTarget(w http.ResponseWriter, r *http.Request, prefix string) (row int, collection bool, ok bool) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if path == "" {
		return 0, true, true
	}

	value, err := strconv.Atoi(path)
	if err != nil || value < 0 {
		applog.Debug(r.Context(), "invalid worksheet row target", "target", path)
		http.NotFound(w, r)
		return 0, false, false
	}
	return value, false, true
}

func logRowWarnings(ctx context.Context, entity string, warnings []workbook.RowWarning) {
	for _, warning := range warnings {
		applog.Warn(ctx, "worksheet cell coerced to zero value", "entity", entity, "detail", warning.String())
	}
}

// handleRowDelete implements the two-step delete confirmation. The first
// DELETE records the row in the session and answers 202; repeating it with
// confirm=1 removes the row; cancel=1 clears the pending state.
func handleRowDelete(w http.ResponseWriter, r *http.Request, entity string, row int, remove func(context.Context, int) error) {
	q := r.URL.Query()

	if q.Get("cancel") == "1" {
		clearPendingDelete(r, entity)
		applog.Debug(r.Context(), "delete cancelled", "entity", entity, "row", row)
		writeJSON(w, http.StatusOK, deleteStatusResponse{Status: "cancelled", Row: row})
		return
	}

	pending, ok := pendingDeleteRow(r, entity)
	if q.Get("confirm") == "1" && ok && pending == row {
		if err := remove(r.Context(), row); err != nil {
			clearPendingDelete(r, entity)
			writeStoreError(w, r, err, entity)
			return
		}
		resetFormState(r, entity)
		applog.Info(r.Context(), "worksheet row deleted", "entity", entity, "row", row)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	markPendingDelete(r, entity, row)
	applog.Debug(r.Context(), "delete pending confirmation", "entity", entity, "row", row)
	writeJSON(w, http.StatusAccepted, deleteStatusResponse{Status: "pending_confirmation", Row: row})
}
