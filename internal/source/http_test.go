package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/pkg/httputil"
	"github.com/wonny/c360/pkg/logger"
)

func TestHTTPSource_CSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/banking.csv", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	url := server.URL + "/data/banking.csv"
	src := NewHTTPSource(url, "", httputil.New(logger.NewNop(), 0).DisableRetry(), logger.NewNop())

	customers, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 3)
	assert.Equal(t, "http:"+url, src.Name())
}

func TestHTTPSource_XLSX(t *testing.T) {
	body, err := os.ReadFile(createTestXLSX(t, map[string][][]string{"Clients": workbookRows}))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/export.XLSX?token=abc", "Clients", httputil.New(logger.NewNop(), 0), logger.NewNop())

	customers, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestHTTPSource_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/missing.csv", "", httputil.New(logger.NewNop(), 0).DisableRetry(), logger.NewNop())

	_, err := src.Load(context.Background())
	require.Error(t, err)

	var statusErr *httputil.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"https://example.com/banking.csv", true},
		{"http://localhost:9000/b.xlsx", true},
		{"data/banking.csv", false},
		{"/abs/banking.xlsx", false},
		{"ftp://host/banking.csv", false},
		{"https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.path))
		})
	}
}

func TestIsXLSX(t *testing.T) {
	assert.True(t, isXLSX("https://h/a/b.xlsx"))
	assert.True(t, isXLSX("https://h/b.XLSX?x=1"))
	assert.False(t, isXLSX("https://h/b.csv"))
	assert.False(t, isXLSX("https://h/xlsx"))
}
