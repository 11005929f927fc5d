package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/models"
)

// CustomerResource handles REST-style interactions with the customer worksheet.
func CustomerResource(w http.ResponseWriter, r *http.Request) {
	if !resourceReady(w, r) {
		return
	}

	row, collection, ok := resourceTarget(w, r, "/app/api/customers")
	if !ok {
		return
	}

	if collection {
		switch r.Method {
		case http.MethodGet:
			listCustomers(w, r)
		case http.MethodPost:
			createCustomer(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		updateCustomer(w, r, row)
	case http.MethodDelete:
		handleRowDelete(w, r, "customers", row, repository.DeleteCustomer)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	customers, warnings, err := repository.Customers(ctx)
	if err != nil {
		writeStoreError(w, r, err, "customers")
		return
	}
	logRowWarnings(ctx, "customers", warnings)

	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		filtered := make([]models.Customer, 0, len(customers))
		for _, customer := range customers {
			if containsFold(customer.Code, query) || containsFold(customer.ShortName, query) {
				filtered = append(filtered, customer)
			}
		}
		customers = filtered
	}

	writeJSON(w, http.StatusOK, listResponse{Items: customers, Warnings: warnings})
}

func createCustomer(w http.ResponseWriter, r *http.Request) {
	var payload models.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid customer payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.CreateCustomer(r.Context(), payload); err != nil {
		writeStoreError(w, r, err, "customers")
		return
	}

	resetFormState(r, "customers")
	writeJSON(w, http.StatusCreated, payload)
}

func updateCustomer(w http.ResponseWriter, r *http.Request, row int) {
	var payload models.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "invalid customer payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := repository.UpdateCustomer(r.Context(), row, payload); err != nil {
		writeStoreError(w, r, err, "customers")
		return
	}

	resetFormState(r, "customers")
	writeJSON(w, http.StatusOK, payload)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
