package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"

	"pigmento/internal/config"
	"pigmento/internal/sheets"
	"pigmento/internal/workbook"
	"pigmento/models"
)

// pantoneLinePattern matches the reference list lines exported from the color
// book, e.g. "PANTONE 7599 C  125  NORFIL  M-10118" with the customer and
// material number optional.
var (
	pantoneLinePattern = regexp.MustCompile(`(?i)^(?:PANTONE\s+)?(\d{3,4}\s?(?:C|U|CP|XGC))\s+(\S+)(?:\s+(\S+))?(?:\s+(\S+))?\s*$`)
	pantoneCodePattern = regexp.MustCompile(`^(\d{3,4})\s*([A-Z]+)$`)
)

func main() {
	path := "pantone-mappings.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(context.Background(), path); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locate input: %w", err)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openWorkbook(cfg.Workbook)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}

	var mappings []models.PantoneMapping
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		mappings, err = readPDF(path)
	default:
		mappings, err = readCSV(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(mappings) == 0 {
		return errors.New("no pantone mappings found in input")
	}

	added, err := upsertMappings(ctx, store, mappings)
	if err != nil {
		return fmt.Errorf("write mappings: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Imported %d pantone mappings from %s (%d new)\n", len(mappings), filepath.Base(path), added)
	return nil
}

func openWorkbook(cfg config.WorkbookConfig) (workbook.Store, error) {
	if cfg.RemoteURL != "" {
		return sheets.NewClient(sheets.Config{
			BaseURL: cfg.RemoteURL,
			Token:   cfg.RemoteToken,
			Timeout: cfg.RemoteTimeout,
		})
	}
	return workbook.NewXLSXStore(cfg.Path), nil
}

// readCSV parses a mapping export. Column names are matched loosely so both
// our own exports and the color book's spreadsheet round-trip.
func readCSV(path string) ([]models.PantoneMapping, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	columns := map[string]int{}
	for idx, name := range rows[0] {
		columns[normalizeColumn(name)] = idx
	}
	pick := func(row []string, names ...string) string {
		for _, name := range names {
			if idx, ok := columns[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
		}
		return ""
	}

	mappings := make([]models.PantoneMapping, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		mapping := models.PantoneMapping{
			Pantone:        pick(row, "pantone", "pantone_code", "color"),
			RecipeCode:     pick(row, "recipe_code", "recipe", "formula"),
			Customer:       pick(row, "customer", "client"),
			MaterialNumber: pick(row, "material_number", "material", "article"),
		}
		if mapping.Pantone == "" {
			continue
		}
		mappings = append(mappings, mapping)
	}
	return mappings, nil
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// readPDF extracts the plain text of a color book PDF and picks out every
// line that looks like a Pantone-to-recipe reference.
func readPDF(path string) ([]models.PantoneMapping, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, err
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, err
	}

	mappings := make([]models.PantoneMapping, 0)
	for _, line := range strings.Split(buf.String(), "\n") {
		if mapping, ok := parsePantoneLine(line); ok {
			mappings = append(mappings, mapping)
		}
	}
	return mappings, nil
}

func parsePantoneLine(line string) (models.PantoneMapping, bool) {
	match := pantoneLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return models.PantoneMapping{}, false
	}
	code := strings.ToUpper(strings.TrimSpace(match[1]))
	code = pantoneCodePattern.ReplaceAllString(code, "$1 $2")
	return models.PantoneMapping{
		Pantone:        code,
		RecipeCode:     match[2],
		Customer:       match[3],
		MaterialNumber: match[4],
	}, true
}

// upsertMappings merges the parsed mappings into the pantone worksheet. An
// existing pantone/recipe pair is updated in place, everything else is
// appended; the sheet is rewritten once.
func upsertMappings(ctx context.Context, store workbook.Store, mappings []models.PantoneMapping) (int, error) {
	table, err := store.Load(ctx, workbook.SheetPantone)
	if err != nil {
		return 0, err
	}
	existing, _ := workbook.DecodePantoneMappings(table)

	index := make(map[string]int, len(existing))
	for i, mapping := range existing {
		index[mappingKey(mapping)] = i
	}

	added := 0
	for _, mapping := range mappings {
		if i, ok := index[mappingKey(mapping)]; ok {
			existing[i] = mapping
			continue
		}
		index[mappingKey(mapping)] = len(existing)
		existing = append(existing, mapping)
		added++
	}

	if table.Header == nil {
		table.Header = workbook.PantoneHeader
	}
	if err := store.Save(ctx, workbook.EncodePantoneMappings(table, existing)); err != nil {
		return 0, err
	}
	return added, nil
}

func mappingKey(mapping models.PantoneMapping) string {
	return strings.ToLower(strings.TrimSpace(mapping.Pantone)) + "|" + strings.TrimSpace(mapping.RecipeCode)
}
