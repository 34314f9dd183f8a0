package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/logger"
)

func TestDecodeCSV(t *testing.T) {
	customers, stats, err := DecodeCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 3, Loaded: 3, SkippedNoID: 0}, stats)
	require.Len(t, customers, 3)

	c := customers[0]
	assert.Equal(t, "IND81288", c.ClientID)
	assert.Equal(t, "Raymond Mills", c.Name)
	assert.Equal(t, 24, c.Age)
	assert.Equal(t, "Anthony Torres", c.BankingContact)
	assert.Equal(t, "Male", c.Gender)
	assert.Equal(t, "1", c.RelationshipCode)
	assert.Equal(t, contracts.FeeHigh, c.FeeStructure)
	assert.Equal(t, contracts.LoyaltyJade, c.Loyalty)
	assert.InDelta(t, 75384.77, c.EstimatedIncome, 1e-9)
	assert.InDelta(t, 42745.1, c.TotalFees, 1e-9)
	assert.InDelta(t, 1991, c.EngagementDays, 1e-9)
	assert.Equal(t, 1, c.CreditCardCount)
	assert.InDelta(t, 2, c.RiskWeighting, 1e-9)

	assert.Equal(t, "Female", customers[1].Gender)

	// all-empty numeric cells decode as zero
	empty := customers[2]
	assert.Equal(t, "IND00000", empty.ClientID)
	assert.Zero(t, empty.TotalFees)
	assert.Zero(t, empty.Age)
}

func TestDecodeCSV_SkipsMissingClientID(t *testing.T) {
	input := "Client ID,Name,Total Fees\nA,Ann,10\n,Ghost,20\n  ,Blank,30\nB,Bob,\n"

	customers, stats, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 4, Loaded: 2, SkippedNoID: 2}, stats)
	assert.Equal(t, "A", customers[0].ClientID)
	assert.Equal(t, "B", customers[1].ClientID)
	assert.Zero(t, customers[1].TotalFees)
}

func TestDecodeCSV_DuplicateClientID(t *testing.T) {
	input := "Client ID,Name\nA,Ann\nB,Bob\nA,Again\n"

	_, _, err := DecodeCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateClientID))
	assert.Contains(t, err.Error(), "rows 2 and 4")
}

func TestDecodeCSV_HeaderNormalised(t *testing.T) {
	input := "\ufeff Client ID , Name ,Total Fees\nA,Ann,5\n"

	customers, _, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ann", customers[0].Name)
	assert.Equal(t, 5.0, customers[0].TotalFees)
}

func TestDecodeCSV_UnknownAndMissingColumns(t *testing.T) {
	input := "Client ID,Favourite Colour\nA,green\n"

	customers, _, err := DecodeCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Zero(t, customers[0].RiskWeighting)
}

func TestDecodeCSV_Errors(t *testing.T) {
	_, _, err := DecodeCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, _, err = DecodeCSV(strings.NewReader("Client ID,Total Fees\nA,lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestCSVSource_Load(t *testing.T) {
	path := writeFile(t, "banking.csv", sampleCSV)
	src := NewCSVSource(path, logger.NewNop())

	customers, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 3)
	assert.Equal(t, "csv:"+path, src.Name())
}

func TestCSVSource_Errors(t *testing.T) {
	_, err := NewCSVSource("/nonexistent/banking.csv", logger.NewNop()).Load(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewCSVSource(writeFile(t, "b.csv", sampleCSV), logger.NewNop()).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeHeader(t *testing.T) {
	got := normalizeHeader([]string{"\ufeffClient ID", " Name", "", ""})
	assert.Equal(t, []string{"Client ID", "Name", "_column_3", "_column_4"}, got)
}
