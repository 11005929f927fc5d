package handlers

import (
	"net/http"
	"strings"
	"time"

	"pigmento/internal/inventory"
	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

var nowFunc = time.Now

type usageReportResponse struct {
	PigmentID string `json:"pigment_id"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end"`
	Grams     float64 `json:"grams"`
	Display   string `json:"display"`
}

type rollupResponse struct {
	PigmentID      string `json:"pigment_id"`
	Start          string `json:"start,omitempty"`
	End            string `json:"end"`
	OpeningGrams   float64 `json:"opening_grams"`
	ReceiptGrams   float64 `json:"receipt_grams"`
	UsageGrams     float64 `json:"usage_grams"`
	FinalGrams     float64 `json:"final_grams"`
	OpeningDisplay string `json:"opening_display"`
	ReceiptDisplay string `json:"receipt_display"`
	UsageDisplay   string `json:"usage_display"`
	FinalDisplay   string `json:"final_display"`
}

type leaderboardEntryResponse struct {
	PigmentID string  `json:"pigment_id"`
	Grams     float64 `json:"grams"`
	Display   string  `json:"display"`
}

// parseReportDate accepts the date formats the worksheets use.
func parseReportDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	for _, layout := range []string{"2006-01-02", "02.01.2006", "02/01/2006"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func reportInterval(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	q := r.URL.Query()
	start, okStart := parseReportDate(q.Get("start"))
	if !okStart {
		writeJSONError(w, http.StatusBadRequest, "invalid start date")
		return time.Time{}, time.Time{}, false
	}
	end, okEnd := parseReportDate(q.Get("end"))
	if !okEnd {
		writeJSONError(w, http.StatusBadRequest, "invalid end date")
		return time.Time{}, time.Time{}, false
	}
	if end.IsZero() {
		end = nowFunc().UTC()
	}
	return start, end, true
}

func formatReportDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}

type reportInputs struct {
	orders   []models.ProductionOrder
	recipes  []models.Recipe
	stock    []models.StockEntry
	pigments []models.Pigment
}

// loadReportInputs fetches the worksheets a report needs. Decode warnings
// are logged and the coerced rows still feed the report, so a single bad
// cell degrades the numbers instead of failing the request.
func loadReportInputs(w http.ResponseWriter, r *http.Request, withStock bool) (reportInputs, bool) {
	ctx := r.Context()
	var inputs reportInputs
	var warnings []workbook.RowWarning

	orders, orderWarnings, err := repository.Orders(ctx)
	if err != nil {
		writeStoreError(w, r, err, "orders")
		return inputs, false
	}
	recipes, recipeWarnings, err := repository.Recipes(ctx)
	if err != nil {
		writeStoreError(w, r, err, "recipes")
		return inputs, false
	}
	inputs.orders = orders
	inputs.recipes = recipes
	warnings = append(warnings, orderWarnings...)
	warnings = append(warnings, recipeWarnings...)

	if withStock {
		stock, stockWarnings, err := repository.StockEntries(ctx)
		if err != nil {
			writeStoreError(w, r, err, "stock-entries")
			return inputs, false
		}
		pigments, pigmentWarnings, err := repository.Pigments(ctx)
		if err != nil {
			writeStoreError(w, r, err, "pigments")
			return inputs, false
		}
		inputs.stock = stock
		inputs.pigments = pigments
		warnings = append(warnings, stockWarnings...)
		warnings = append(warnings, pigmentWarnings...)
	}

	for _, warning := range warnings {
		applog.Warn(ctx, "worksheet cell coerced to zero value", "detail", warning.String())
	}
	return inputs, true
}

// UsageReport answers the pigment consumption question: grams of one
// pigment used by production orders inside a date range.
func UsageReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !resourceReady(w, r) {
		return
	}

	pigmentID := strings.TrimSpace(r.URL.Query().Get("pigment_id"))
	if pigmentID == "" {
		writeJSONError(w, http.StatusBadRequest, "supply a pigment_id")
		return
	}

	start, end, ok := reportInterval(w, r)
	if !ok {
		return
	}

	inputs, ok := loadReportInputs(w, r, false)
	if !ok {
		return
	}

	grams := inventory.PigmentUsage(pigmentID, inputs.orders, inputs.recipes, start, end)
	writeJSON(w, http.StatusOK, usageReportResponse{
		PigmentID: pigmentID,
		Start:     formatReportDate(start),
		End:       formatReportDate(end),
		Grams:     grams,
		Display:   inventory.FormatGrams(grams),
	})
}

// InventoryReport answers the stock question: opening balance, receipts,
// usage, and final stock per pigment over a date range. Without a
// pigment_id it returns the summary across the pigment sheet.
func InventoryReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !resourceReady(w, r) {
		return
	}

	start, end, ok := reportInterval(w, r)
	if !ok {
		return
	}

	inputs, ok := loadReportInputs(w, r, true)
	if !ok {
		return
	}

	if pigmentID := strings.TrimSpace(r.URL.Query().Get("pigment_id")); pigmentID != "" {
		rollup := inventory.RollupPigment(pigmentID, inputs.stock, inputs.orders, inputs.recipes, start, end)
		writeJSON(w, http.StatusOK, projectRollup(rollup))
		return
	}

	rollups := inventory.RollupSummary(inputs.pigments, inputs.stock, inputs.orders, inputs.recipes, start, end)
	items := make([]rollupResponse, 0, len(rollups))
	for _, rollup := range rollups {
		items = append(items, projectRollup(rollup))
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items})
}

func projectRollup(rollup inventory.Rollup) rollupResponse {
	return rollupResponse{
		PigmentID:      rollup.PigmentID,
		Start:          formatReportDate(rollup.Start),
		End:            formatReportDate(rollup.End),
		OpeningGrams:   rollup.Opening,
		ReceiptGrams:   rollup.Receipts,
		UsageGrams:     rollup.Usage,
		FinalGrams:     rollup.Final,
		OpeningDisplay: inventory.FormatGrams(rollup.Opening),
		ReceiptDisplay: inventory.FormatGrams(rollup.Receipts),
		UsageDisplay:   inventory.FormatGrams(rollup.Usage),
		FinalDisplay:   inventory.FormatGrams(rollup.Final),
	}
}

// LeaderboardReport ranks pigments by consumption over a date range.
func LeaderboardReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !resourceReady(w, r) {
		return
	}

	start, end, ok := reportInterval(w, r)
	if !ok {
		return
	}

	inputs, ok := loadReportInputs(w, r, false)
	if !ok {
		return
	}

	totals := inventory.Leaderboard(inputs.orders, inputs.recipes, start, end)
	items := make([]leaderboardEntryResponse, 0, len(totals))
	for _, total := range totals {
		if inventory.ExcludedFromSummary(total.PigmentID) {
			continue
		}
		items = append(items, leaderboardEntryResponse{
			PigmentID: total.PigmentID,
			Grams:     total.Grams,
			Display:   inventory.FormatGrams(total.Grams),
		})
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items})
}
