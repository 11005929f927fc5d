package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "pigmento/internal/log"
)

// Per-session workspace state. Each entity keeps a draft form, a selected
// row, a pagination cursor, and a pending delete confirmation. Everything is
// cleared by resetFormState after a successful mutation, so a saved row
// never leaves stale form state behind.
const (
	sessionDraftPrefix         = "form:draft:"
	sessionSelectedRowPrefix   = "form:selected:"
	sessionCursorPrefix        = "form:cursor:"
	sessionPendingDeletePrefix = "delete:pending:"
)

var draftEntities = map[string]struct{}{
	"customers":        {},
	"pigments":         {},
	"recipes":          {},
	"orders":           {},
	"stock-entries":    {},
	"pantone-mappings": {},
}

func validDraftEntity(entity string) bool {
	_, ok := draftEntities[entity]
	return ok
}

type draftPayload struct {
	Values      map[string]string `json:"values"`
	SelectedRow *int              `json:"selected_row,omitempty"`
	Cursor      *int              `json:"cursor,omitempty"`
}

func saveDraft(r *http.Request, entity string, payload draftPayload) error {
	if len(payload.Values) > 0 {
		encoded, err := json.Marshal(payload.Values)
		if err != nil {
			return err
		}
		sessionManager.Put(r.Context(), sessionDraftPrefix+entity, string(encoded))
	}
	if payload.SelectedRow != nil {
		sessionManager.Put(r.Context(), sessionSelectedRowPrefix+entity, *payload.SelectedRow+1)
	}
	if payload.Cursor != nil {
		sessionManager.Put(r.Context(), sessionCursorPrefix+entity, *payload.Cursor)
	}
	return nil
}

func loadDraft(r *http.Request, entity string) draftPayload {
	payload := draftPayload{Values: map[string]string{}}

	if encoded := sessionManager.GetString(r.Context(), sessionDraftPrefix+entity); encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &payload.Values); err != nil {
			applog.Warn(r.Context(), "discarding unreadable session draft", "entity", entity, "error", err)
			payload.Values = map[string]string{}
		}
	}
	if selected := sessionManager.GetInt(r.Context(), sessionSelectedRowPrefix+entity); selected > 0 {
		row := selected - 1
		payload.SelectedRow = &row
	}
	if sessionManager.Exists(r.Context(), sessionCursorPrefix+entity) {
		cursor := sessionManager.GetInt(r.Context(), sessionCursorPrefix+entity)
		payload.Cursor = &cursor
	}
	return payload
}

// resetFormState clears the entity's draft, selection, cursor, and any
// pending delete confirmation.
func resetFormState(r *http.Request, entity string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Remove(r.Context(), sessionDraftPrefix+entity)
	sessionManager.Remove(r.Context(), sessionSelectedRowPrefix+entity)
	sessionManager.Remove(r.Context(), sessionCursorPrefix+entity)
	sessionManager.Remove(r.Context(), sessionPendingDeletePrefix+entity)
}

func markPendingDelete(r *http.Request, entity string, row int) {
	sessionManager.Put(r.Context(), sessionPendingDeletePrefix+entity, row+1)
}

func pendingDeleteRow(r *http.Request, entity string) (int, bool) {
	if sessionManager == nil {
		return 0, false
	}
	stored := sessionManager.GetInt(r.Context(), sessionPendingDeletePrefix+entity)
	if stored <= 0 {
		return 0, false
	}
	return stored - 1, true
}

func clearPendingDelete(r *http.Request, entity string) {
	if sessionManager == nil {
		return
	}
	sessionManager.Remove(r.Context(), sessionPendingDeletePrefix+entity)
}

// DraftResource stores, returns, and resets per-session entity form drafts
// under /app/api/drafts/{entity}.
func DraftResource(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	if _, ok := currentUserID(r); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entity := strings.Trim(strings.TrimPrefix(r.URL.Path, "/app/api/drafts"), "/")
	if !validDraftEntity(entity) {
		applog.Debug(r.Context(), "draft request for unknown entity", "entity", entity)
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, loadDraft(r, entity))
	case http.MethodPost, http.MethodPut:
		var payload draftPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			applog.Debug(r.Context(), "invalid draft payload", "entity", entity, "error", err)
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		if err := saveDraft(r, entity, payload); err != nil {
			applog.Error(r.Context(), "failed to store session draft", "entity", entity, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to store draft")
			return
		}
		writeJSON(w, http.StatusOK, loadDraft(r, entity))
	case http.MethodDelete:
		resetFormState(r, entity)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
