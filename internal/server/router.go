package server

import (
	"context"
	"net/http"

	"pigmento/internal/handlers"
	applog "pigmento/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)

	mux.Handle("/app", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("/app/", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))

	protect := func(path string, handler http.HandlerFunc) {
		mux.Handle(path, handlers.RequireAuthentication(handler))
		applog.Debug(context.Background(), "route registered", "path", path, "protected", true)
	}

	protect("/app/api/customers", handlers.CustomerResource)
	protect("/app/api/customers/", handlers.CustomerResource)
	protect("/app/api/pigments", handlers.PigmentResource)
	protect("/app/api/pigments/", handlers.PigmentResource)
	protect("/app/api/recipes", handlers.RecipeResource)
	protect("/app/api/recipes/", handlers.RecipeResource)
	protect("/app/api/orders", handlers.OrderResource)
	protect("/app/api/orders/", handlers.OrderResource)
	protect("/app/api/stock-entries", handlers.StockEntryResource)
	protect("/app/api/stock-entries/", handlers.StockEntryResource)
	protect("/app/api/pantone-mappings", handlers.PantoneMappingResource)
	protect("/app/api/pantone-mappings/", handlers.PantoneMappingResource)
	protect("/app/api/pantone/search", handlers.PantoneSearch)
	protect("/app/api/reports/usage", handlers.UsageReport)
	protect("/app/api/reports/inventory", handlers.InventoryReport)
	protect("/app/api/reports/leaderboard", handlers.LeaderboardReport)
	protect("/app/api/drafts/", handlers.DraftResource)

	mux.HandleFunc("/", handlers.Home)
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
