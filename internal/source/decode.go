package source

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/wonny/c360/internal/contracts"
)

var (
	// ErrDuplicateClientID is returned when a snapshot repeats a client id
	ErrDuplicateClientID = errors.New("duplicate client id")
	// ErrNoHeader is returned for an empty file or sheet
	ErrNoHeader = errors.New("missing header row")
)

// Stats summarises one decode pass
type Stats struct {
	Rows        int `json:"rows"`
	Loaded      int `json:"loaded"`
	SkippedNoID int `json:"skipped_no_id"`
}

// decode reads a header row and then every data row from r.
// Rows without a client id are skipped; a repeated client id is an error.
func decode(r csvutil.Reader) ([]contracts.Customer, Stats, error) {
	var stats Stats

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, ErrNoHeader
	}
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read header: %w", err)
	}

	dec, err := csvutil.NewDecoder(r, normalizeHeader(header)...)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to create decoder: %w", err)
	}

	customers := make([]contracts.Customer, 0, 1024)
	seen := make(map[string]int)

	for {
		var rec record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("row %d: %w", stats.Rows+2, err)
		}
		stats.Rows++

		c := rec.customer()
		if c.ClientID == "" {
			stats.SkippedNoID++
			continue
		}
		if first, dup := seen[c.ClientID]; dup {
			return nil, stats, fmt.Errorf("%w: %s (rows %d and %d)", ErrDuplicateClientID, c.ClientID, first, stats.Rows+1)
		}
		seen[c.ClientID] = stats.Rows + 1

		customers = append(customers, c)
	}

	stats.Loaded = len(customers)
	return customers, stats, nil
}

// normalizeHeader trims cell padding and a UTF-8 BOM on the first column.
// Blank header cells get a positional name so they never collide.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("_column_%d", i+1)
		}
		out[i] = h
	}
	return out
}
