package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wonny/c360/internal/contracts"
)

const sampleCSV = `Client ID,Name,Age,Location ID,Joined Bank,Banking Contact,Nationality,Occupation,Fee Structure,Loyalty Classification,Estimated Income,Superannuation Savings,Amount of Credit Cards,Credit Card Balance,Bank Loans,Bank Deposits,Checking Accounts,Saving Accounts,Foreign Currency Account,Business Lending,Properties Owned,Risk Weighting,BRId,GenderId,IAId,Total Loan,Total Deposit,Total Fees,Engagement Days
IND81288,Raymond Mills,24,34324,06-05-2019,Anthony Torres,American,Safety Technician IV,High,Jade,"75,384.77",17112.47,1,484.54,1485828.64,603617.88,607332.46,12249.96,1134.47,1013838.49,1,2,1,1,1,2499667.13,1224334.77,42745.1,1991
IND65833,Julia Spencer,23,69931,16-03-2001,Jeremy Porter,African,Software Consultant,Mid,Jade,289834.31,24611.98,1,2256.72,641482.79,229521.37,344635.16,61162.31,2733.51,3004.33,1,3,2,2,2,644487.12,638052.35,19141.71,8438
IND00000,,,,,,,,,,,,,,,,,,,,,,,,,,,,
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeSource is an in-memory RecordSource that counts loads
type fakeSource struct {
	mu        sync.Mutex
	name      string
	customers []contracts.Customer
	err       error
	loads     int
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) Load(ctx context.Context) ([]contracts.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]contracts.Customer, len(f.customers))
	copy(out, f.customers)
	return out, nil
}

func (f *fakeSource) set(customers []contracts.Customer, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers = customers
	f.err = err
}

func (f *fakeSource) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

var errOrigin = errors.New("origin unavailable")
