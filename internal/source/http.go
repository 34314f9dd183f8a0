package source

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/httputil"
	"github.com/wonny/c360/pkg/logger"
)

// HTTPSource downloads the dataset from an http(s) URL on every Load.
// The format follows the URL path extension (.xlsx, otherwise CSV).
type HTTPSource struct {
	url    string
	sheet  string
	client *httputil.Client
	logger *logger.Logger
}

// NewHTTPSource creates a remote dataset source
func NewHTTPSource(rawURL, sheet string, client *httputil.Client, log *logger.Logger) *HTTPSource {
	return &HTTPSource{url: rawURL, sheet: sheet, client: client, logger: log}
}

// Name implements contracts.RecordSource
func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

// Load implements contracts.RecordSource
func (s *HTTPSource) Load(ctx context.Context) ([]contracts.Customer, error) {
	body, err := s.client.Fetch(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to download dataset: %w", err)
	}

	var (
		customers []contracts.Customer
		stats     Stats
	)
	if isXLSX(s.url) {
		customers, stats, err = decodeXLSXBytes(body, s.sheet)
	} else {
		customers, stats, err = decodeCSVBytes(body)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.url, err)
	}

	logStats(s.logger, s.Name(), stats)
	return customers, nil
}

// IsRemote reports whether a dataset path is an http(s) URL
func IsRemote(p string) bool {
	u, err := url.Parse(p)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isXLSX(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ".xlsx")
}
