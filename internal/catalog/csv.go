package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Expected CSV header, in order. Tag columns hold semicolon-joined values
// since the legacy export used comma-joined strings inside quoted fields.
var csvColumns = []string{
	"id", "name", "category", "dosha_impact", "tastes", "qualities",
	"energy", "seasons", "calories", "protein", "carbs", "fat",
}

// ImportCSV reads a legacy catalog export and returns typed FoodItems.
// Rows with malformed macro numbers are rejected; a missing category is
// inferred from the identifier prefix, the convention the legacy data used.
func ImportCSV(r io.Reader) ([]FoodItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, col := range csvColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return nil, fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], col)
		}
	}

	var foods []FoodItem
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		food, err := foodFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid food on CSV line %d: %w", line, err)
		}
		foods = append(foods, food)
	}
	return foods, nil
}

// ImportCSVFile opens and imports a catalog CSV from disk.
func ImportCSVFile(path string) ([]FoodItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()
	return ImportCSV(f)
}

func foodFromRecord(record []string) (FoodItem, error) {
	macros, err := macrosFromRecord(record[8:12])
	if err != nil {
		return FoodItem{}, err
	}

	id := strings.TrimSpace(record[0])
	category := ParseCategory(record[2])
	if strings.TrimSpace(record[2]) == "" {
		category = categoryFromID(id)
	}

	return FoodItem{
		ID:        id,
		Name:      strings.TrimSpace(record[1]),
		Category:  category,
		Impacts:   ParseImpacts(record[3]),
		Tastes:    ParseTastes(record[4]),
		Qualities: ParseQualities(record[5]),
		Energy:    ParseEnergy(record[6]),
		Seasons:   ParseSeasons(record[7]),
		Per100g:   macros,
	}, nil
}

func macrosFromRecord(fields []string) (Macros, error) {
	vals := make([]float64, 4)
	names := []string{"calories", "protein", "carbs", "fat"}
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Macros{}, fmt.Errorf("bad %s value %q: %w", names[i], field, err)
		}
		if v < 0 {
			return Macros{}, fmt.Errorf("negative %s value %q", names[i], field)
		}
		vals[i] = v
	}
	return Macros{Calories: vals[0], Protein: vals[1], Carbs: vals[2], Fat: vals[3]}, nil
}

// categoryFromID maps the legacy identifier-prefix convention onto a
// Category. Only the importer knows about this convention; everything else
// reads the explicit field.
func categoryFromID(id string) Category {
	id = strings.ToLower(id)
	if strings.HasPrefix(id, "sw") {
		return CategorySweetener
	}
	prefixes := map[byte]Category{
		'g': CategoryGrain,
		'l': CategoryLegume,
		'v': CategoryVegetable,
		'f': CategoryFruit,
		'n': CategoryNut,
		'd': CategoryDairy,
		'p': CategoryProtein,
		's': CategorySpice,
	}
	if len(id) > 0 {
		if cat, ok := prefixes[id[0]]; ok {
			return cat
		}
	}
	return CategoryOther
}
