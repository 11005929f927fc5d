package handlers

import (
	"net/http"

	"pigmento/internal/views/pages"
)

// Home renders the public landing page, sending signed-in users straight to
// the workshop.
func Home(w http.ResponseWriter, r *http.Request) {
	if ActiveSession(r) {
		redirectToApp(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home().Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
