package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/selection"
)

const testCSV = `Client ID,Name,Age,Location ID,Joined Bank,Banking Contact,Nationality,Occupation,Fee Structure,Loyalty Classification,Estimated Income,Superannuation Savings,Amount of Credit Cards,Credit Card Balance,Bank Loans,Bank Deposits,Checking Accounts,Saving Accounts,Foreign Currency Account,Business Lending,Properties Owned,Risk Weighting,BRId,GenderId,IAId,Total Loan,Total Deposit,Total Fees,Engagement Days
IND81288,Raymond Mills,24,34324,06-05-2019,Anthony Torres,American,Safety Technician IV,High,Jade,75384.77,17112.47,1,484.54,1485828.64,603617.88,607332.46,12249.96,1134.47,1013838.49,1,2,1,1,1,2499667.13,1224334.77,42745.1,1991
IND65833,Julia Spencer,23,69931,16-03-2001,Jeremy Porter,African,Software Consultant,Mid,Jade,289834.31,24611.98,1,2256.72,641482.79,229521.37,344635.16,61162.31,2733.51,3004.33,1,3,2,2,2,644487.12,638052.35,19141.71,8438
`

// runCommand executes the root command against a temp CSV dataset
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "banking.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o600))

	t.Setenv("ENV", "development")
	t.Setenv("DATASET_PATH", path)
	t.Setenv("DATASET_SOURCE", "csv")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("DASHBOARD_CONFIG", "")

	// flags keep their values between executions
	customersQuery, profileQuery, portfolioQuery = selection.QueryParams{}, selection.QueryParams{}, selection.QueryParams{}
	customersJSON, profileJSON, portfolioJSON = false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCustomersCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "customers", "--json", "--sort", "name", "--dir", "asc", "--limit", "all")
	require.NoError(t, err)

	var result selection.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Customers, 2)
	assert.Equal(t, "Julia Spencer", result.Customers[0].Name)
	assert.Equal(t, "Raymond Mills", result.Customers[1].Name)
}

func TestCustomersCommand_Table(t *testing.T) {
	out, err := runCommand(t, "customers", "-q", "spencer")
	require.NoError(t, err)

	assert.Contains(t, out, "IND65833")
	assert.NotContains(t, out, "IND81288")
	assert.Contains(t, out, `search="spencer"`)
}

func TestCustomersCommand_InvalidTier(t *testing.T) {
	_, err := runCommand(t, "customers", "--risk", "medium")
	require.Error(t, err)
}

func TestProfileCommand(t *testing.T) {
	out, err := runCommand(t, "profile", "IND81288")
	require.NoError(t, err)

	assert.Contains(t, out, "Raymond Mills")
	assert.Contains(t, out, "vs. portfolio")

	_, err = runCommand(t, "profile", "IND99999")
	require.Error(t, err)
}

func TestPortfolioCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "portfolio", "--json", "--gender", "Female")
	require.NoError(t, err)

	var got struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Total)
}

func TestConfigCheckCommand_Defaults(t *testing.T) {
	out, err := runCommand(t, "config", "check")
	require.NoError(t, err)

	assert.Contains(t, out, "Config hash")
}
