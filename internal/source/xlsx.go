package source

import (
	"context"
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v2"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
)

// XLSXSource loads the customer snapshot from one sheet of a workbook.
// An empty sheet name selects the first sheet.
type XLSXSource struct {
	path   string
	sheet  string
	logger *logger.Logger
}

// NewXLSXSource creates an XLSX source
func NewXLSXSource(path, sheet string, log *logger.Logger) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet, logger: log}
}

// Name implements contracts.RecordSource
func (s *XLSXSource) Name() string {
	return "xlsx:" + s.path
}

// Load implements contracts.RecordSource
func (s *XLSXSource) Load(ctx context.Context) ([]contracts.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := xlsx.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	customers, stats, err := decodeWorkbook(f, s.sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	logStats(s.logger, s.Name(), stats)
	return customers, nil
}

// decodeXLSXBytes decodes a workbook held in memory
func decodeXLSXBytes(data []byte, sheet string) ([]contracts.Customer, Stats, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	return decodeWorkbook(f, sheet)
}

func decodeWorkbook(f *xlsx.File, name string) ([]contracts.Customer, Stats, error) {
	sheet, err := pickSheet(f, name)
	if err != nil {
		return nil, Stats{}, err
	}
	return decode(&sheetReader{sheet: sheet})
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, fmt.Errorf("sheet %q not found", name)
		}
		return sheet, nil
	}

	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.Sheets[0], nil
}

// sheetReader adapts sheet rows to csvutil.Reader. Every row is padded or
// truncated to the header width, since trailing empty cells are not stored.
type sheetReader struct {
	sheet *xlsx.Sheet
	next  int
	width int
}

func (r *sheetReader) Read() ([]string, error) {
	for r.next < len(r.sheet.Rows) {
		row := r.sheet.Rows[r.next]
		r.next++
		if row == nil {
			continue
		}

		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}

		if r.width == 0 {
			// header row fixes the width
			r.width = len(cells)
			return cells, nil
		}
		if blank(cells) {
			continue
		}
		return fit(cells, r.width), nil
	}
	return nil, io.EOF
}

func fit(cells []string, width int) []string {
	if len(cells) >= width {
		return cells[:width]
	}
	out := make([]string, width)
	copy(out, cells)
	return out
}

func blank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
