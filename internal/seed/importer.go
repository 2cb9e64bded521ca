// Package seed imports an initial vocabulary into the mastery store from
// Excel or CSV files.
package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabkit/internal/mastery"
	"github.com/example/vocabkit/pkg/models"
)

// Config defines the import configuration.
type Config struct {
	FilePath          string // Path to the Excel or CSV file
	WordColumn        string // Column with the word
	TranslationColumn string // Column with the translation
	CategoryColumn    string // Column with the category
	TopicColumn       string // Column with the topic
	ContextColumn     string // Column with an example sentence
	SheetName         string // Name of the sheet to import (Excel only)
	StartRow          int    // The row to start importing from (1-based index)
}

// DefaultConfig returns the default import configuration.
func DefaultConfig() Config {
	return Config{
		WordColumn:        "A",
		TranslationColumn: "B",
		CategoryColumn:    "C",
		TopicColumn:       "D",
		ContextColumn:     "E",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// Result holds the outcome of an import run.
type Result struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Evicted        int
	Errors         []string
}

// Import seeds the store from the configured file. The extension picks the
// format. Records created here start with fresh SM-2 state and zero review
// counters, so every newly imported word is immediately due.
func Import(store *mastery.Store, config Config) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(store, config)
	}
	return importFromExcel(store, config)
}

func importFromExcel(store *mastery.Store, config Config) (*Result, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return processRows(store, config, rows), nil
}

func importFromCSV(store *mastery.Store, config Config) (*Result, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return processRows(store, config, rows), nil
}

// processRows folds the rows into the existing collection and persists it
// once at the end. Rows matching an existing record only refresh the
// descriptive fields; counters and scheduling state are left alone.
func processRows(store *mastery.Store, config Config, rows [][]string) *Result {
	records := store.GetAll()
	index := make(map[string]int, len(records))
	for i, record := range records {
		index[record.ID] = i
	}

	result := &Result{Errors: make([]string, 0)}
	now := time.Now()

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word := cell(row, config.WordColumn)
		translation := cell(row, config.TranslationColumn)
		if word == "" || translation == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing word or translation", i+1))
			continue
		}

		category := cell(row, config.CategoryColumn)
		topic := cell(row, config.TopicColumn)
		context := cell(row, config.ContextColumn)

		id := models.RecordID(word, translation)
		if at, ok := index[id]; ok {
			record := &records[at]
			record.Category = category
			record.Topic = topic
			if context != "" {
				record.Context = context
			}
			result.Updated++
			continue
		}

		index[id] = len(records)
		records = append(records, models.MasteryRecord{
			ID:           id,
			Word:         word,
			Translation:  translation,
			Category:     category,
			Topic:        topic,
			Context:      context,
			LastReviewed: now,
		})
		result.Created++
	}

	result.Evicted = store.SaveAll(records)
	return result
}

// cell reads and trims the row value addressed by a column letter ("A",
// "B", ... "AA"). Out-of-range columns read as empty.
func cell(row []string, column string) string {
	at := columnIndex(column)
	if at < 0 || at >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[at])
}

func columnIndex(column string) int {
	at := 0
	for _, c := range strings.ToUpper(column) {
		if c < 'A' || c > 'Z' {
			return -1
		}
		at = at*26 + int(c-'A') + 1
	}
	return at - 1
}
