package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "pigmento/internal/log"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// New returns an in-memory sqlite database seeded with a demo account.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:pigmento-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("workshop"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Mara Lindqvist",
		Email:        "mara@pigmento.app",
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}

// Workbook returns an in-memory worksheet store seeded with representative
// workshop data so the application is usable without a spreadsheet backend.
func Workbook(ctx context.Context) *workbook.MemoryStore {
	applog.Debug(ctx, "seeding mock workbook")

	store := workbook.NewMemoryStore()

	customers := []models.Customer{
		{Code: "NORFIL", ShortName: "Norfil Plastics", Notes: "weekly pickup"},
		{Code: "VELPAK", ShortName: "Velpak Packaging"},
	}
	store.Seed(workbook.EncodeCustomers(workbook.NewTable(workbook.SheetCustomers, workbook.CustomerHeader), customers))

	pigments := []models.Pigment{
		{Code: "118", ColorIndex: "PR 101", Name: "Iron Oxide Red", Category: models.PigmentCategoryPigment, PackagingUnit: "25 kg bag"},
		{Code: "204", ColorIndex: "PB 15:3", Name: "Phthalo Blue GS", Category: models.PigmentCategoryPigment, PackagingUnit: "20 kg box"},
		{Code: "330", ColorIndex: "PW 6", Name: "Titanium Dioxide", Category: models.PigmentCategoryPigment, PackagingUnit: "25 kg bag"},
		{Code: "MB-40", Name: "Carrier Masterbatch", Category: models.PigmentCategoryMasterbatch, PackagingUnit: "25 kg bag"},
	}
	store.Seed(workbook.EncodePigments(workbook.NewTable(workbook.SheetPigments, workbook.PigmentHeader), pigments))

	recipes := []models.Recipe{
		{
			Code:      "125",
			Category:  models.RecipeCategoryOriginal,
			Status:    models.RecipeStatusActive,
			Customer:  "NORFIL",
			ColorName: "Brick Red",
			Pantone:   "7599 C",
			Unit:      "kg",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "118", Weight: 18},
				{PigmentID: "330", Weight: 6},
			},
			CreatedAt: time.Date(2023, time.March, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			Code:      "0125",
			Category:  models.RecipeCategoryAdditional,
			Status:    models.RecipeStatusActive,
			Parent:    "125",
			Customer:  "NORFIL",
			ColorName: "Brick Red tint",
			Unit:      "kg",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "204", Weight: 2},
			},
			CreatedAt: time.Date(2023, time.June, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			Code:      "240",
			Category:  models.RecipeCategoryOriginal,
			Status:    models.RecipeStatusActive,
			Customer:  "VELPAK",
			ColorName: "Ocean Blue",
			Pantone:   "3015 C",
			Unit:      "kg",
			Components: [models.MaxComponents]models.RecipeComponent{
				{PigmentID: "204", Weight: 12},
				{PigmentID: "330", Weight: 10},
			},
			CreatedAt: time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC),
		},
	}
	store.Seed(workbook.EncodeRecipes(workbook.NewTable(workbook.SheetRecipes, workbook.RecipeHeader), recipes))

	orders := []models.ProductionOrder{
		{
			Number:     "PO-2024-031",
			ProducedAt: time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC),
			RecipeCode: "125",
			ColorName:  "Brick Red",
			Customer:   "NORFIL",
			CreatedAt:  time.Date(2024, time.February, 10, 9, 30, 0, 0, time.UTC),
			Packs: [models.MaxPacks]models.PackSpec{
				{Weight: 25, Count: 4},
			},
			PigmentIDs: [models.MaxComponents]string{"118", "330"},
		},
		{
			Number:     "PO-2024-047",
			ProducedAt: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			RecipeCode: "240",
			ColorName:  "Ocean Blue",
			Customer:   "VELPAK",
			CreatedAt:  time.Date(2024, time.March, 1, 14, 5, 0, 0, time.UTC),
			Packs: [models.MaxPacks]models.PackSpec{
				{Weight: 20, Count: 2},
				{Weight: 5, Count: 8},
			},
			PigmentIDs: [models.MaxComponents]string{"204", "330"},
		},
	}
	store.Seed(workbook.EncodeOrders(workbook.NewTable(workbook.SheetOrders, workbook.OrderHeader), orders))

	stock := []models.StockEntry{
		{Kind: models.StockKindInitial, PigmentID: "118", Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Quantity: 50, Unit: "kg"},
		{Kind: models.StockKindReceipt, PigmentID: "118", Date: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), Quantity: 25, Unit: "kg"},
		{Kind: models.StockKindInitial, PigmentID: "204", Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Quantity: 40, Unit: "kg"},
	}
	store.Seed(workbook.EncodeStockEntries(workbook.NewTable(workbook.SheetStock, workbook.StockHeader), stock))

	mappings := []models.PantoneMapping{
		{Pantone: "7599 C", RecipeCode: "125", Customer: "NORFIL", MaterialNumber: "M-10118"},
		{Pantone: "3015 C", RecipeCode: "240", Customer: "VELPAK", MaterialNumber: "M-10204"},
	}
	store.Seed(workbook.EncodePantoneMappings(workbook.NewTable(workbook.SheetPantone, workbook.PantoneHeader), mappings))

	applog.Debug(ctx, "mock workbook seeded")
	return store
}
