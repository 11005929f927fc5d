package workbook

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pigmento/models"
)

// RowWarning flags a cell that could not be parsed while decoding a
// worksheet. The value is coerced to its zero value so a single bad row
// degrades a report instead of aborting it.
type RowWarning struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	Reason string `json:"reason"`
}

func (w RowWarning) String() string {
	return fmt.Sprintf("%s row %d column %q: %s", w.Sheet, w.Row+1, w.Column, w.Reason)
}

// Canonical column layouts per worksheet.
var (
	CustomerHeader = []string{"code", "short_name", "notes"}
	PigmentHeader  = []string{"code", "color_index", "name", "category", "packaging_unit", "notes"}
	StockHeader    = []string{"kind", "pigment_id", "date", "quantity", "unit", "notes"}
	PantoneHeader  = []string{"pantone", "recipe_code", "customer", "material_number"}
	RecipeHeader   = recipeHeader()
	OrderHeader    = orderHeader()
)

func recipeHeader() []string {
	header := []string{"code", "category", "status", "parent", "customer", "color_name", "pantone", "unit", "net_weight", "net_weight_unit"}
	for i := 1; i <= models.MaxComponents; i++ {
		header = append(header, fmt.Sprintf("pigment_%d", i), fmt.Sprintf("weight_%d", i))
	}
	return append(header, "total_category", "notes", "created_at")
}

func orderHeader() []string {
	header := []string{"number", "produced_at", "recipe_code", "color_name", "customer", "created_at", "pantone"}
	for i := 1; i <= models.MaxPacks; i++ {
		header = append(header, fmt.Sprintf("pack_weight_%d", i), fmt.Sprintf("pack_count_%d", i))
	}
	for i := 1; i <= models.MaxComponents; i++ {
		header = append(header, fmt.Sprintf("pigment_%d", i))
	}
	return append(header, "notes")
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "02.01.2006", "02/01/2006", "2006/01/02"}

type decoder struct {
	table    Table
	warnings []RowWarning
}

func (d *decoder) text(row int, column string) string {
	return strings.TrimSpace(d.table.Cell(row, column))
}

// number coerces the cell to a float64, flagging and zeroing malformed
// values instead of failing the decode.
func (d *decoder) number(row int, column string) float64 {
	raw := d.text(row, column)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		d.warn(row, column, fmt.Sprintf("not a number: %q", raw))
		return 0
	}
	return value
}

// date coerces the cell to a calendar date, flagging and zeroing values that
// match no known layout.
func (d *decoder) date(row int, column string) time.Time {
	raw := d.text(row, column)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	d.warn(row, column, fmt.Sprintf("unparseable date: %q", raw))
	return time.Time{}
}

func (d *decoder) warn(row int, column, reason string) {
	d.warnings = append(d.warnings, RowWarning{Sheet: d.table.Sheet, Row: row, Column: column, Reason: reason})
}

// DecodeCustomers parses the customer worksheet into typed records.
func DecodeCustomers(table Table) ([]models.Customer, []RowWarning) {
	d := decoder{table: table}
	customers := make([]models.Customer, 0, len(table.Rows))
	for i := range table.Rows {
		customers = append(customers, models.Customer{
			Code:      d.text(i, "code"),
			ShortName: d.text(i, "short_name"),
			Notes:     d.text(i, "notes"),
		})
	}
	return customers, d.warnings
}

// EncodeCustomers renders customer records back into worksheet rows,
// preserving the table's sheet name and revision.
func EncodeCustomers(table Table, customers []models.Customer) Table {
	out := Table{Sheet: table.Sheet, Header: CustomerHeader, Revision: table.Revision}
	for _, c := range customers {
		out.Append([]string{c.Code, c.ShortName, c.Notes})
	}
	return out
}

// DecodePigments parses the pigment worksheet into typed records.
func DecodePigments(table Table) ([]models.Pigment, []RowWarning) {
	d := decoder{table: table}
	pigments := make([]models.Pigment, 0, len(table.Rows))
	for i := range table.Rows {
		pigments = append(pigments, models.Pigment{
			Code:          d.text(i, "code"),
			ColorIndex:    d.text(i, "color_index"),
			Name:          d.text(i, "name"),
			Category:      models.NormalizePigmentCategory(d.text(i, "category")),
			PackagingUnit: d.text(i, "packaging_unit"),
			Notes:         d.text(i, "notes"),
		})
	}
	return pigments, d.warnings
}

// EncodePigments renders pigment records back into worksheet rows.
func EncodePigments(table Table, pigments []models.Pigment) Table {
	out := Table{Sheet: table.Sheet, Header: PigmentHeader, Revision: table.Revision}
	for _, p := range pigments {
		out.Append([]string{p.Code, p.ColorIndex, p.Name, p.Category, p.PackagingUnit, p.Notes})
	}
	return out
}

// DecodeRecipes parses the recipe worksheet into typed records.
func DecodeRecipes(table Table) ([]models.Recipe, []RowWarning) {
	d := decoder{table: table}
	recipes := make([]models.Recipe, 0, len(table.Rows))
	for i := range table.Rows {
		recipe := models.Recipe{
			Code:          d.text(i, "code"),
			Category:      strings.ToLower(d.text(i, "category")),
			Status:        strings.ToLower(d.text(i, "status")),
			Parent:        d.text(i, "parent"),
			Customer:      d.text(i, "customer"),
			ColorName:     d.text(i, "color_name"),
			Pantone:       d.text(i, "pantone"),
			Unit:          d.text(i, "unit"),
			NetWeight:     d.number(i, "net_weight"),
			NetWeightUnit: d.text(i, "net_weight_unit"),
			TotalCategory: d.text(i, "total_category"),
			Notes:         d.text(i, "notes"),
			CreatedAt:     d.date(i, "created_at"),
		}
		for slot := 0; slot < models.MaxComponents; slot++ {
			recipe.Components[slot] = models.RecipeComponent{
				PigmentID: d.text(i, fmt.Sprintf("pigment_%d", slot+1)),
				Weight:    d.number(i, fmt.Sprintf("weight_%d", slot+1)),
			}
		}
		recipes = append(recipes, recipe)
	}
	return recipes, d.warnings
}

// EncodeRecipes renders recipe records back into worksheet rows.
func EncodeRecipes(table Table, recipes []models.Recipe) Table {
	out := Table{Sheet: table.Sheet, Header: RecipeHeader, Revision: table.Revision}
	for _, r := range recipes {
		row := []string{
			r.Code, r.Category, r.Status, r.Parent, r.Customer, r.ColorName,
			r.Pantone, r.Unit, formatNumber(r.NetWeight), r.NetWeightUnit,
		}
		for _, component := range r.Components {
			row = append(row, component.PigmentID, formatNumber(component.Weight))
		}
		row = append(row, r.TotalCategory, r.Notes, formatTimestamp(r.CreatedAt))
		out.Append(row)
	}
	return out
}

// DecodeOrders parses the production order worksheet into typed records.
func DecodeOrders(table Table) ([]models.ProductionOrder, []RowWarning) {
	d := decoder{table: table}
	orders := make([]models.ProductionOrder, 0, len(table.Rows))
	for i := range table.Rows {
		order := models.ProductionOrder{
			Number:     d.text(i, "number"),
			ProducedAt: d.date(i, "produced_at"),
			RecipeCode: d.text(i, "recipe_code"),
			ColorName:  d.text(i, "color_name"),
			Customer:   d.text(i, "customer"),
			CreatedAt:  d.date(i, "created_at"),
			Pantone:    d.text(i, "pantone"),
			Notes:      d.text(i, "notes"),
		}
		for slot := 0; slot < models.MaxPacks; slot++ {
			order.Packs[slot] = models.PackSpec{
				Weight: d.number(i, fmt.Sprintf("pack_weight_%d", slot+1)),
				Count:  d.number(i, fmt.Sprintf("pack_count_%d", slot+1)),
			}
		}
		for slot := 0; slot < models.MaxComponents; slot++ {
			order.PigmentIDs[slot] = d.text(i, fmt.Sprintf("pigment_%d", slot+1))
		}
		orders = append(orders, order)
	}
	return orders, d.warnings
}

// EncodeOrders renders production order records back into worksheet rows.
func EncodeOrders(table Table, orders []models.ProductionOrder) Table {
	out := Table{Sheet: table.Sheet, Header: OrderHeader, Revision: table.Revision}
	for _, o := range orders {
		row := []string{
			o.Number, formatDate(o.ProducedAt), o.RecipeCode, o.ColorName,
			o.Customer, formatTimestamp(o.CreatedAt), o.Pantone,
		}
		for _, pack := range o.Packs {
			row = append(row, formatNumber(pack.Weight), formatNumber(pack.Count))
		}
		row = append(row, o.PigmentIDs[:]...)
		row = append(row, o.Notes)
		out.Append(row)
	}
	return out
}

// DecodeStockEntries parses the stock worksheet into typed records.
func DecodeStockEntries(table Table) ([]models.StockEntry, []RowWarning) {
	d := decoder{table: table}
	entries := make([]models.StockEntry, 0, len(table.Rows))
	for i := range table.Rows {
		entries = append(entries, models.StockEntry{
			Kind:      strings.ToLower(d.text(i, "kind")),
			PigmentID: d.text(i, "pigment_id"),
			Date:      d.date(i, "date"),
			Quantity:  d.number(i, "quantity"),
			Unit:      strings.ToLower(d.text(i, "unit")),
			Notes:     d.text(i, "notes"),
		})
	}
	return entries, d.warnings
}

// EncodeStockEntries renders stock records back into worksheet rows.
func EncodeStockEntries(table Table, entries []models.StockEntry) Table {
	out := Table{Sheet: table.Sheet, Header: StockHeader, Revision: table.Revision}
	for _, e := range entries {
		out.Append([]string{e.Kind, e.PigmentID, formatDate(e.Date), formatNumber(e.Quantity), e.Unit, e.Notes})
	}
	return out
}

// DecodePantoneMappings parses the Pantone worksheet into typed records.
func DecodePantoneMappings(table Table) ([]models.PantoneMapping, []RowWarning) {
	d := decoder{table: table}
	mappings := make([]models.PantoneMapping, 0, len(table.Rows))
	for i := range table.Rows {
		mappings = append(mappings, models.PantoneMapping{
			Pantone:        d.text(i, "pantone"),
			RecipeCode:     d.text(i, "recipe_code"),
			Customer:       d.text(i, "customer"),
			MaterialNumber: d.text(i, "material_number"),
		})
	}
	return mappings, d.warnings
}

// EncodePantoneMappings renders Pantone records back into worksheet rows.
func EncodePantoneMappings(table Table, mappings []models.PantoneMapping) Table {
	out := Table{Sheet: table.Sheet, Header: PantoneHeader, Revision: table.Revision}
	for _, m := range mappings {
		out.Append([]string{m.Pantone, m.RecipeCode, m.Customer, m.MaterialNumber})
	}
	return out
}

func formatNumber(value float64) string {
	if value == 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02 15:04:05")
}
