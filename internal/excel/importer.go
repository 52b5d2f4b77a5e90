package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/database"
	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	NameColumn        int    // Column with the algorithm name (0-based)
	NotationColumn    int    // Column with the move sequence
	DescriptionColumn int    // Column with the description
	MethodColumn      int    // Column with the method name
	DifficultyColumn  int    // Column with the difficulty (1-5)
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration:
// Name | Notation | Description | Method | Difficulty, header on row 1
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		NameColumn:        0,
		NotationColumn:    1,
		DescriptionColumn: 2,
		MethodColumn:      3,
		DifficultyColumn:  4,
		SheetName:         "Sheet1",
		StartRow:          2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	MethodsCreated int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportAlgorithms imports catalog entries from an Excel or CSV file.
// Existing (name, method) pairs are updated in place; imported entries are
// created pre-approved since they come from an admin.
func ImportAlgorithms(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports algorithms from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	return processRows(rows, config)
}

// importFromCSV imports algorithms from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, row)
	}

	return processRows(rows, config)
}

// processRows runs every data row through the upsert logic
func processRows(rows [][]string, config ImportConfig) (*ImportResult, error) {
	methodRepo := database.NewMethodRepository()
	algorithmRepo := database.NewAlgorithmRepository()

	result := &ImportResult{Errors: make([]string, 0)}

	// Cache method name -> id so each method is looked up once
	methodCache := make(map[string]int64)
	existing, err := methodRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing methods: %v", err)
	}
	for _, m := range existing {
		methodCache[strings.ToLower(m.Name)] = m.ID
	}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		if err := processRow(row, config, methodCache, methodRepo, algorithmRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// processRow upserts a single catalog entry
func processRow(row []string, config ImportConfig, methodCache map[string]int64,
	methodRepo *database.MethodRepository, algorithmRepo *database.AlgorithmRepository,
	result *ImportResult) error {

	name := cell(row, config.NameColumn)
	notation := cell(row, config.NotationColumn)
	methodName := cell(row, config.MethodColumn)

	if name == "" || notation == "" || methodName == "" {
		result.Skipped++
		return nil
	}

	difficulty := 1
	if v := cell(row, config.DifficultyColumn); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > 5 {
			return fmt.Errorf("invalid difficulty %q", v)
		}
		difficulty = d
	}

	methodID, ok := methodCache[strings.ToLower(methodName)]
	if !ok {
		method := &models.Method{Name: methodName}
		if err := methodRepo.Create(method); err != nil {
			return fmt.Errorf("failed to create method %q: %v", methodName, err)
		}
		methodID = method.ID
		methodCache[strings.ToLower(methodName)] = methodID
		result.MethodsCreated++
	}

	alg, err := algorithmRepo.GetByNameAndMethod(name, methodID)
	if err != nil && !errors.Is(err, learning.ErrNotFound) {
		return err
	}

	if alg != nil {
		alg.Notation = notation
		alg.Description = cell(row, config.DescriptionColumn)
		alg.Difficulty = difficulty
		if err := algorithmRepo.Update(alg); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	newAlg := &models.Algorithm{
		Name:        name,
		Notation:    notation,
		Description: cell(row, config.DescriptionColumn),
		MethodID:    methodID,
		Difficulty:  difficulty,
		Status:      models.ModerationApproved,
	}
	if err := algorithmRepo.Create(newAlg); err != nil {
		return err
	}
	result.Created++
	return nil
}
