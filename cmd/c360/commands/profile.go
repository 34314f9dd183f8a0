package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/c360/internal/selection"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile [client_id]",
	Short: "고객 프로필 + 포트폴리오 비교",
	Long: `한 고객의 KPI를 필터링된 포트폴리오 평균과 비교합니다.
고객 자신은 필터를 통과하지 않아도 됩니다.

Example:
  go run ./cmd/c360 profile IND81288
  go run ./cmd/c360 profile IND81288 --gender Female --json`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

var (
	profileQuery selection.QueryParams
	profileJSON  bool
)

func init() {
	rootCmd.AddCommand(profileCmd)

	addQueryFlags(profileCmd, &profileQuery, false)
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "JSON 출력")
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := load(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	q, err := rt.pipeline.ParseQuery(profileQuery)
	if err != nil {
		return err
	}

	profile, err := rt.pipeline.Profile(rt.snapshot.Records(), q, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if profileJSON {
		return PrintJSON(out, profile)
	}

	c := profile.Customer
	PrintHeader(out, fmt.Sprintf("%s · %s", c.ClientID, c.Name))

	const kw = 20
	PrintKeyValue(out, "Relationship", profile.RelationshipName, kw)
	PrintKeyValue(out, "Advisor", c.BankingContact, kw)
	PrintKeyValue(out, "Loyalty", fmt.Sprintf("%s (%d)", c.Loyalty, c.LoyaltyScore), kw)
	PrintKeyValue(out, "Tenure", formatNumber(c.TenureYears, 1)+" years", kw)
	PrintSeparator(out)

	PrintKeyValue(out, "Lifetime fees", formatMoney(c.LifetimeFees), kw)
	PrintKeyValue(out, "Annual fee revenue", formatMoney(c.AnnualFeeRevenue), kw)
	PrintKeyValue(out, "CLV", formatMoney(c.CLV), kw)
	PrintKeyValue(out, "Products", fmt.Sprintf("%d (cross-sell %s)", c.ProductCount, formatPct(c.CrossSellOpportunity)), kw)
	PrintKeyValue(out, "Wallet share", formatPct(c.WalletShare), kw)
	PrintSeparator(out)

	PrintKeyValue(out, "Risk", fmt.Sprintf("%s · %s", formatNumber(c.RiskWeighting, 1), c.RiskCategory.Label), kw)
	PrintKeyValue(out, "Debt to income", formatPct(c.DebtToIncome), kw)
	PrintKeyValue(out, "Net position", fmt.Sprintf("%s (%s)", formatMoney(c.NetPosition.Value), c.NetPosition.Type), kw)
	PrintKeyValue(out, "Liquidity ratio", formatLiquidity(c.LiquidityRatio), kw)
	PrintKeyValue(out, "Asset backing", formatPct(c.AssetBackingRatio), kw)

	PrintHeader(out, "vs. portfolio · "+describeFilters(q.Filters, q.Search))
	PrintKeyValue(out, "Tenure", formatComparison(profile.Comparisons.Tenure), kw)
	PrintKeyValue(out, "CLV", formatComparison(profile.Comparisons.CLV), kw)
	PrintKeyValue(out, "Risk", formatComparison(profile.Comparisons.Risk), kw)

	if len(profile.RevenueComposition) > 0 {
		PrintSeparator(out)
		for _, s := range profile.RevenueComposition {
			PrintKeyValue(out, s.Name, formatMoney(s.Value), kw)
		}
	}
	if len(profile.ProductPortfolio) > 0 {
		PrintSeparator(out)
		for _, s := range profile.ProductPortfolio {
			PrintKeyValue(out, s.Name, formatMoney(s.Value), kw)
		}
	}

	return nil
}
