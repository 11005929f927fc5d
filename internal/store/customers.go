package store

import (
	"context"
	"fmt"
	"strings"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// Customers loads the customer worksheet into typed records.
func (r *Repository) Customers(ctx context.Context) ([]models.Customer, []workbook.RowWarning, error) {
	table, err := r.sheets.Load(ctx, workbook.SheetCustomers)
	if err != nil {
		return nil, nil, fmt.Errorf("load customers: %w", err)
	}
	customers, warnings := workbook.DecodeCustomers(table)
	return customers, warnings, nil
}

// CreateCustomer appends a customer row. A blank or already-present code is
// refused with a validation warning and no row is added.
func (r *Repository) CreateCustomer(ctx context.Context, customer models.Customer) error {
	code := strings.TrimSpace(customer.Code)
	if code == "" {
		return validationFailure("customer code must not be blank")
	}

	table, err := r.sheets.Load(ctx, workbook.SheetCustomers)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	customers, _ := workbook.DecodeCustomers(table)
	for _, existing := range customers {
		if strings.TrimSpace(existing.Code) == code {
			return validationFailure(fmt.Sprintf("customer code %q already exists", code))
		}
	}

	customer.Code = code
	customers = append(customers, customer)
	if err := r.sheets.Save(ctx, workbook.EncodeCustomers(table, customers)); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	applog.Debug(ctx, "customer created", "code", code)
	return nil
}

// UpdateCustomer overwrites the customer at the given row position in full.
func (r *Repository) UpdateCustomer(ctx context.Context, row int, customer models.Customer) error {
	code := strings.TrimSpace(customer.Code)
	if code == "" {
		return validationFailure("customer code must not be blank")
	}

	table, err := r.sheets.Load(ctx, workbook.SheetCustomers)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	customers, _ := workbook.DecodeCustomers(table)
	if row < 0 || row >= len(customers) {
		return fmt.Errorf("update customer: %w", workbook.ErrRowOutOfRange)
	}
	for i, existing := range customers {
		if i != row && strings.TrimSpace(existing.Code) == code {
			return validationFailure(fmt.Sprintf("customer code %q already exists", code))
		}
	}

	customer.Code = code
	customers[row] = customer
	if err := r.sheets.Save(ctx, workbook.EncodeCustomers(table, customers)); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	applog.Debug(ctx, "customer updated", "row", row, "code", code)
	return nil
}

// DeleteCustomer removes exactly the customer at the given row position. No
// dependent rows are touched.
func (r *Repository) DeleteCustomer(ctx context.Context, row int) error {
	table, err := r.sheets.Load(ctx, workbook.SheetCustomers)
	if err != nil {
		return fmt.Errorf("load customers: %w", err)
	}
	customers, _ := workbook.DecodeCustomers(table)
	if row < 0 || row >= len(customers) {
		return fmt.Errorf("delete customer: %w", workbook.ErrRowOutOfRange)
	}
	customers = append(customers[:row], customers[row+1:]...)
	if err := r.sheets.Save(ctx, workbook.EncodeCustomers(table, customers)); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	applog.Debug(ctx, "customer deleted", "row", row)
	return nil
}
