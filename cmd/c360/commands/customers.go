package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/c360/internal/selection"
)

// customersCmd represents the customers command
var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "고객 목록 조회 (필터/검색/정렬)",
	Long: `스냅샷에서 고객을 선택하고 KPI를 계산해 표로 출력합니다.

필터 순서: 수익 티어 → 리스크 티어 → 성별/관계/어드바이저/거래기간 → 검색
수익 티어 백분위는 앞 단계를 통과한 집합에서 계산됩니다.

Example:
  go run ./cmd/c360 customers
  go run ./cmd/c360 customers --revenue high --risk low
  go run ./cmd/c360 customers -q spencer --sort name --dir asc --limit all
  go run ./cmd/c360 customers --json`,
	RunE: runCustomers,
}

var (
	customersQuery selection.QueryParams
	customersJSON  bool
)

func init() {
	rootCmd.AddCommand(customersCmd)

	addQueryFlags(customersCmd, &customersQuery, true)
	customersCmd.Flags().BoolVar(&customersJSON, "json", false, "JSON 출력")
}

func runCustomers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := load(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	q, err := rt.pipeline.ParseQuery(customersQuery)
	if err != nil {
		return err
	}

	result := rt.pipeline.Run(rt.snapshot.Records(), q)

	out := cmd.OutOrStdout()
	if customersJSON {
		return PrintJSON(out, result)
	}

	PrintHeader(out, fmt.Sprintf("Customers · %s", describeFilters(q.Filters, q.Search)))

	if result.Total == 0 {
		PrintWarning(out, "No customers match the current filters")
		return nil
	}

	widths := []int{10, 22, -14, -14, -7, 14, -9}
	PrintTableHeader(out, []string{"Client ID", "Name", "Lifetime Fees", "CLV", "Risk", "Risk Level", "Products"}, widths)
	for _, c := range result.Customers {
		PrintTableRow(out, []string{
			c.ClientID,
			c.Name,
			formatMoney(c.LifetimeFees),
			formatMoney(c.CLV),
			formatNumber(c.RiskWeighting, 1),
			c.RiskCategory.Label,
			strconv.Itoa(c.ProductCount),
		}, widths)
	}

	PrintSeparator(out)
	fmt.Fprintf(out, "Showing %d of %d · sorted by %s %s\n",
		len(result.Customers), result.Total, result.Sort.Field, result.Sort.Direction)
	PrintKeyValue(out, "Total revenue", formatMoney(result.Summary.TotalRevenue), 14)
	PrintKeyValue(out, "Average CLV", formatMoney(result.Summary.AvgCLV), 14)
	PrintKeyValue(out, "Average risk", formatNumber(result.Summary.AvgRisk, 1), 14)

	return nil
}
