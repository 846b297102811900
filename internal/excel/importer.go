package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/pkg/models"
)

// ImportConfig defines the import configuration.
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	WordColumn        string // Column with the English word
	TranslationColumn string // Column with the Russian translation
	CategoryColumn    string // Column with the category tag (optional)
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		TranslationColumn: "B",
		CategoryColumn:    "C",
		SheetName:         "Sheet1",
		StartRow:          2, // Skip the header row by default
	}
}

// ImportResult holds the result of an import operation.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer loads corpus words from spreadsheet files.
type Importer struct {
	words *database.WordRepository
}

// New creates an importer writing through the given repository.
func New(words *database.WordRepository) *Importer {
	return &Importer{words: words}
}

// ImportWords imports corpus words from an Excel or CSV file.
func (im *Importer) ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		im.processRow(ctx, row, config, result, i+1)
	}
	return result, nil
}

func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		im.processRow(ctx, row, config, result, rowNum)
	}
	return result, nil
}

func (im *Importer) processRow(ctx context.Context, row []string, config ImportConfig, result *ImportResult, rowNum int) {
	result.TotalProcessed++

	var headword, translation, category string
	if idx := columnToIndex(config.WordColumn); idx >= 0 && idx < len(row) {
		headword = strings.TrimSpace(row[idx])
	}
	if idx := columnToIndex(config.TranslationColumn); idx >= 0 && idx < len(row) {
		translation = strings.TrimSpace(row[idx])
	}
	if config.CategoryColumn != "" {
		if idx := columnToIndex(config.CategoryColumn); idx >= 0 && idx < len(row) {
			category = strings.ToLower(strings.TrimSpace(row[idx]))
		}
	}

	if headword == "" || translation == "" {
		result.Skipped++
		return
	}

	word := &models.Word{
		Headword:    strings.ToLower(headword),
		Translation: strings.ToLower(translation),
		Category:    category,
	}
	if err := im.words.Create(ctx, word); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		return
	}
	result.Created++
}

// columnToIndex converts an Excel column letter to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
