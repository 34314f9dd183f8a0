package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	datasetPath     string
	datasetSource   string
	datasetSheet    string
	dashboardConfig string
	verbose         bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "c360",
	Short: "Customer 360 - 은행 고객 KPI 대시보드",
	Long: `Customer 360 Unified CLI

고객 스냅샷을 적재하고 고객별 KPI를 계산합니다.
Select → Enrich → Sort → Limit 파이프라인으로 목록, 프로필, 포트폴리오 평균을 제공합니다.

Usage:
  go run ./cmd/c360 [command]

Examples:
  go run ./cmd/c360 serve
  go run ./cmd/c360 customers --revenue high --sort name --dir asc
  go run ./cmd/c360 profile IND81288
  go run ./cmd/c360 import --file data/cleaned_banking.csv`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags (override DATASET_* / DASHBOARD_CONFIG from the environment)
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset file or URL (DATASET_PATH)")
	rootCmd.PersistentFlags().StringVar(&datasetSource, "source", "", "auto|csv|xlsx|postgres (DATASET_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&datasetSheet, "sheet", "", "xlsx sheet name (DATASET_SHEET)")
	rootCmd.PersistentFlags().StringVar(&dashboardConfig, "dashboard-config", "", "dashboard YAML (DASHBOARD_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
