package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/c360/internal/selection"
)

// addQueryFlags binds the dashboard filter, search, sort and limit flags
func addQueryFlags(cmd *cobra.Command, p *selection.QueryParams, withPaging bool) {
	cmd.Flags().StringVar(&p.Gender, "gender", "", "성별 (Male|Female|All)")
	cmd.Flags().StringVar(&p.Relationship, "relationship", "", "관계 코드 (1-4|All)")
	cmd.Flags().StringVar(&p.Advisor, "advisor", "", "담당 어드바이저 (Banking Contact)")
	cmd.Flags().StringVar(&p.Tenure, "tenure", "", `거래 기간 ("< 5 Years"|lt10|lt20|gt20|All)`)
	cmd.Flags().StringVar(&p.Revenue, "revenue", "", "수익 티어 (High|Low|All)")
	cmd.Flags().StringVar(&p.Risk, "risk", "", "리스크 티어 (High|Low|All)")
	cmd.Flags().StringVarP(&p.Search, "search", "q", "", "이름/ID 검색 (부분 일치)")

	if withPaging {
		cmd.Flags().StringVar(&p.Sort, "sort", "", "정렬 기준 (revenue|clv|risk|tenure|products|name)")
		cmd.Flags().StringVar(&p.Direction, "dir", "", "정렬 방향 (asc|desc)")
		cmd.Flags().StringVar(&p.Limit, "limit", "", "최대 행 수 (숫자|all)")
	}
}
