package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/c360/internal/selection"
)

// portfolioCmd represents the portfolio command
var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "포트폴리오 평균/요약 지표",
	Long: `필터링된 고객 집합의 평균 KPI와 요약 지표를 출력합니다.

Example:
  go run ./cmd/c360 portfolio
  go run ./cmd/c360 portfolio --relationship 3 --tenure gt20`,
	RunE: runPortfolio,
}

var (
	portfolioQuery selection.QueryParams
	portfolioJSON  bool
)

func init() {
	rootCmd.AddCommand(portfolioCmd)

	addQueryFlags(portfolioCmd, &portfolioQuery, false)
	portfolioCmd.Flags().BoolVar(&portfolioJSON, "json", false, "JSON 출력")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := load(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	q, err := rt.pipeline.ParseQuery(portfolioQuery)
	if err != nil {
		return err
	}
	q.Limit = 0

	result := rt.pipeline.Run(rt.snapshot.Records(), q)

	out := cmd.OutOrStdout()
	if portfolioJSON {
		return PrintJSON(out, map[string]interface{}{
			"total":    result.Total,
			"averages": result.Averages,
			"summary":  result.Summary,
		})
	}

	PrintHeader(out, "Portfolio · "+describeFilters(q.Filters, q.Search))

	const kw = 20
	avg := result.Averages
	PrintKeyValue(out, "Customers", fmt.Sprint(result.Total), kw)
	PrintKeyValue(out, "Total revenue", formatMoney(result.Summary.TotalRevenue), kw)
	PrintSeparator(out)
	PrintKeyValue(out, "Avg CLV", formatMoney(avg.AvgCLV), kw)
	PrintKeyValue(out, "Avg fees", formatMoney(avg.AvgFees), kw)
	PrintKeyValue(out, "Avg risk", formatNumber(avg.AvgRisk, 1), kw)
	PrintKeyValue(out, "Avg products", formatNumber(avg.AvgProductCount, 2), kw)
	PrintKeyValue(out, "Avg wallet share", formatPct(avg.AvgWalletShare), kw)
	PrintKeyValue(out, "Avg debt to income", formatPct(avg.AvgDebtToIncome), kw)
	PrintKeyValue(out, "Avg liquidity", formatNumber(avg.AvgLiquidityRatio, 2), kw)
	PrintKeyValue(out, "Avg tenure", formatNumber(avg.AvgTenure, 1)+" years", kw)

	return nil
}
