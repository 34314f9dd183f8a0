package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
)

// CSVSource loads the customer snapshot from a CSV file
type CSVSource struct {
	path   string
	logger *logger.Logger
}

// NewCSVSource creates a CSV source
func NewCSVSource(path string, log *logger.Logger) *CSVSource {
	return &CSVSource{path: path, logger: log}
}

// Name implements contracts.RecordSource
func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

// Load implements contracts.RecordSource
func (s *CSVSource) Load(ctx context.Context) ([]contracts.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	customers, stats, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	logStats(s.logger, s.Name(), stats)
	return customers, nil
}

// DecodeCSV decodes a banking clients CSV stream
func DecodeCSV(r io.Reader) ([]contracts.Customer, Stats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return decode(cr)
}

// decodeCSVBytes is DecodeCSV over an in-memory body
func decodeCSVBytes(data []byte) ([]contracts.Customer, Stats, error) {
	return DecodeCSV(bytes.NewReader(data))
}

func logStats(log *logger.Logger, source string, stats Stats) {
	entry := log.WithFields(map[string]interface{}{
		"source":        source,
		"rows":          stats.Rows,
		"loaded":        stats.Loaded,
		"skipped_no_id": stats.SkippedNoID,
	})
	if stats.SkippedNoID > 0 {
		entry.Warn("Dataset loaded with rows missing client id")
		return
	}
	entry.Info("Dataset loaded")
}
