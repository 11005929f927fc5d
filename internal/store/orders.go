package store

import (
	"context"
	"fmt"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// Orders loads the production order worksheet into typed records.
func (r *Repository) Orders(ctx context.Context) ([]models.ProductionOrder, []workbook.RowWarning, error) {
	table, err := r.sheets.Load(ctx, workbook.SheetOrders)
	if err != nil {
		return nil, nil, fmt.Errorf("load orders: %w", err)
	}
	orders, warnings := workbook.DecodeOrders(table)
	return orders, warnings, nil
}

// CreateOrder appends a production order row. Blank or duplicate order
// numbers are refused. When the pigment slots are empty, the referenced
// recipe's composition is copied into the order so usage reports keep
// working even if the recipe changes later.
func (r *Repository) CreateOrder(ctx context.Context, order models.ProductionOrder) error {
	order.Number = strings.TrimSpace(order.Number)
	if order.Number == "" {
		return validationFailure("order number must not be blank")
	}

	table, err := r.sheets.Load(ctx, workbook.SheetOrders)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	orders, _ := workbook.DecodeOrders(table)
	for _, existing := range orders {
		if strings.TrimSpace(existing.Number) == order.Number {
			return validationFailure(fmt.Sprintf("order number %q already exists", order.Number))
		}
	}

	if order.RecipeCode != "" && pigmentSlotsBlank(order) {
		if err := r.denormalizeComposition(ctx, &order); err != nil {
			return err
		}
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = nowFunc().UTC()
	}
	orders = append(orders, order)
	if err := r.sheets.Save(ctx, workbook.EncodeOrders(table, orders)); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	applog.Debug(ctx, "order created", "number", order.Number, "recipe", order.RecipeCode)
	return nil
}

func pigmentSlotsBlank(order models.ProductionOrder) bool {
	for _, id := range order.PigmentIDs {
		if strings.TrimSpace(id) != "" {
			return false
		}
	}
	return true
}

func (r *Repository) denormalizeComposition(ctx context.Context, order *models.ProductionOrder) error {
	recipes, _, err := r.Recipes(ctx)
	if err != nil {
		return err
	}
	target := strings.TrimSpace(order.RecipeCode)
	for _, recipe := range recipes {
		if strings.TrimSpace(recipe.Code) != target || recipe.IsAdditional() {
			continue
		}
		for i, component := range recipe.Components {
			order.PigmentIDs[i] = strings.TrimSpace(component.PigmentID)
		}
		return nil
	}
	return nil
}

// UpdateOrder overwrites the order at the given row position in full.
func (r *Repository) UpdateOrder(ctx context.Context, row int, order models.ProductionOrder) error {
	order.Number = strings.TrimSpace(order.Number)
	if order.Number == "" {
		return validationFailure("order number must not be blank")
	}

	table, err := r.sheets.Load(ctx, workbook.SheetOrders)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	orders, _ := workbook.DecodeOrders(table)
	if row < 0 || row >= len(orders) {
		return fmt.Errorf("update order: %w", workbook.ErrRowOutOfRange)
	}
	for i, existing := range orders {
		if i != row && strings.TrimSpace(existing.Number) == order.Number {
			return validationFailure(fmt.Sprintf("order number %q already exists", order.Number))
		}
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = orders[row].CreatedAt
	}
	orders[row] = order
	if err := r.sheets.Save(ctx, workbook.EncodeOrders(table, orders)); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	applog.Debug(ctx, "order updated", "row", row, "number", order.Number)
	return nil
}

// DeleteOrder removes exactly the order at the given row position.
func (r *Repository) DeleteOrder(ctx context.Context, row int) error {
	table, err := r.sheets.Load(ctx, workbook.SheetOrders)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	orders, _ := workbook.DecodeOrders(table)
	if row < 0 || row >= len(orders) {
		return fmt.Errorf("delete order: %w", workbook.ErrRowOutOfRange)
	}
	orders = append(orders[:row], orders[row+1:]...)
	if err := r.sheets.Save(ctx, workbook.EncodeOrders(table, orders)); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	applog.Debug(ctx, "order deleted", "row", row)
	return nil
}
