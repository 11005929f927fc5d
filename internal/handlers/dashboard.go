package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "pigmento/internal/log"
	"pigmento/internal/views/pages"
)

// Dashboard renders the main application workspace once a user is authenticated.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	snapshot := buildWorkspaceSnapshot(r)

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.DashboardPartial(snapshot)
	} else {
		component = pages.Dashboard(snapshot)
	}

	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// buildWorkspaceSnapshot loads every worksheet for the dashboard. Sheets
// that fail to load leave their section empty rather than failing the page.
func buildWorkspaceSnapshot(r *http.Request) pages.WorkspaceSnapshot {
	if repository == nil {
		return pages.EmptyWorkspaceSnapshot()
	}

	ctx := r.Context()
	snapshot := pages.WorkspaceSnapshot{}

	if customers, warnings, err := repository.Customers(ctx); err == nil {
		snapshot.Customers = customers
		snapshot.Warnings = append(snapshot.Warnings, warnings...)
	} else {
		applog.Error(ctx, "failed to load customers for workspace", "error", err)
	}
	if pigments, warnings, err := repository.Pigments(ctx); err == nil {
		snapshot.Pigments = pigments
		snapshot.Warnings = append(snapshot.Warnings, warnings...)
	} else {
		applog.Error(ctx, "failed to load pigments for workspace", "error", err)
	}
	if recipes, warnings, err := repository.Recipes(ctx); err == nil {
		snapshot.Recipes = recipes
		snapshot.Warnings = append(snapshot.Warnings, warnings...)
	} else {
		applog.Error(ctx, "failed to load recipes for workspace", "error", err)
	}
	if orders, warnings, err := repository.Orders(ctx); err == nil {
		snapshot.Orders = orders
		snapshot.Warnings = append(snapshot.Warnings, warnings...)
	} else {
		applog.Error(ctx, "failed to load orders for workspace", "error", err)
	}
	if entries, warnings, err := repository.StockEntries(ctx); err == nil {
		snapshot.StockEntries = entries
		snapshot.Warnings = append(snapshot.Warnings, warnings...)
	} else {
		applog.Error(ctx, "failed to load stock entries for workspace", "error", err)
	}
	if mappings, warnings, err := repository.PantoneMappings(ctx); err == nil {
		snapshot.Pantone = mappings
		snapshot.Warnings = append(snapshot.Warnings, warnings...)
	} else {
		applog.Error(ctx, "failed to load pantone mappings for workspace", "error", err)
	}

	return snapshot
}
