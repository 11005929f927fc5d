package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/models"
)

// OrderResource handles REST-style interactions with the production order worksheet.
func OrderResource(w http.ResponseWriter, r *http.Request) {
	if !resourceReady(w, r) {
		return
	}

	row, collection, ok := resourceTarget(w, r, "/app/api/orders")
	if !ok {
		return
	}

	if collection {
		switch r.Method {
		case http.MethodGet:
			listOrders(w, r)
		case http.MethodPost:
			createOrder(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		updateOrder(w, r, row)
	case http.MethodDelete:
		handleRowDelete(w, r, "orders", row, repository.DeleteOrder)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders, warnings, err := repository.Orders(ctx)
	if err != nil {
		writeStoreError(w, r, err, "orders")
		return
	}
	logRowWarnings(ctx, "orders", warnings)

	q := r.URL.Query()
	number := strings.TrimSpace(q.Get("number"))
	recipeCode := strings.TrimSpace(q.Get("recipe_code"))
	customer := strings.TrimSpace(q.Get("customer"))
	if number != "" || recipeCode != "" || customer != "" {
		filtered := make([]models.ProductionOrder, 0, len(orders))
		for _, order := range orders {
			if number != "" && !containsFold(order.Number, number) {
				continue
			}
			if recipeCode != "" && !containsFold(order.RecipeCode, recipeCode) {
				continue
			}
			if customer != "" && !containsFold(order.Customer, customer) {
				continue
			}
			filtered = append(filtered, order)
		}
		orders = filtered
	}

	writeJSON(w, http.StatusOK, listResponse{Items: orders, Warnings: warnings})
}

func createOrder(w http.ResponseWriter, r *http.Request) {
	var payload models.ProductionOrder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid order payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.CreateOrder(r.Context(), payload); err != nil {
		writeStoreError(w, r, err, "orders")
		return
	}

	resetFormState(r, "orders")
	writeJSON(w, http.StatusCreated, payload)
}

func updateOrder(w http.ResponseWriter, r *http.Request, row int) {
	var payload models.ProductionOrder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid order payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.UpdateOrder(r.Context(), row, payload); err != nil {
		writeStoreError(w, r, err, "orders")
		return
	}

	resetFormState(r, "orders")
	writeJSON(w, http.StatusOK, payload)
}
