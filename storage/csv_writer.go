package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"flight-agent/models"
	"flight-agent/utils"
)

// CSVWriter dumps the raw listing text of a run to a CSV file
type CSVWriter struct {
	filePath string
	logger   *utils.Logger
}

// NewCSVWriter creates a new CSVWriter
func NewCSVWriter(filePath string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{filePath: filePath, logger: logger}
}

// SaveRaw writes the scanned listings of one query to the CSV file
func (w *CSVWriter) SaveRaw(query string, listings []models.RawListing) error {
	// Ensure output directory exists
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"query", "position", "source_text", "scraped_at"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	for i, l := range listings {
		row := []string{query, strconv.Itoa(i + 1), l.SourceText, now}
		if err := writer.Write(row); err != nil {
			w.logger.Error("Failed to write CSV row %d: %v", i+1, err)
		}
	}

	w.logger.Info("Raw listings written to: %s (%d rows)", w.filePath, len(listings))
	return nil
}
