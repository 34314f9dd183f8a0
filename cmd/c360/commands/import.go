package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/c360/internal/source"
	"github.com/wonny/c360/pkg/config"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/redis"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "CSV/XLSX 스냅샷을 PostgreSQL로 적재",
	Long: `CSV 또는 XLSX 파일(로컬 경로 또는 http(s) URL)을 읽어
customers 테이블을 새 스냅샷으로 교체합니다. DATABASE_URL이 필요합니다.

파일에 없는 고객은 삭제되고, Redis가 설정되어 있으면 스냅샷 캐시를 무효화합니다.

Example:
  go run ./cmd/c360 import --file data/cleaned_banking.csv
  go run ./cmd/c360 import --file data/banking.xlsx --sheet Clients`,
	RunE: runImport,
}

var importFile string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "적재할 CSV/XLSX 파일 또는 URL")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, log, err := loadConfig(false)
	if err != nil {
		return err
	}

	// 1. 파일 읽기
	fileCfg := *cfg
	fileCfg.Dataset = config.DatasetConfig{Source: config.SourceAuto, Path: importFile, Sheet: datasetSheet}
	if strings.HasSuffix(strings.ToLower(importFile), ".xlsx") {
		fileCfg.Dataset.Source = config.SourceXLSX
	} else {
		fileCfg.Dataset.Source = config.SourceCSV
	}

	file, err := source.Open(&fileCfg, source.Deps{Redis: redis.Disabled()}, log.WithComponent("source"))
	if err != nil {
		return fmt.Errorf("open %s: %w", importFile, err)
	}
	customers, err := file.Load(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", importFile, err)
	}

	// 2. DB 적재
	db, err := database.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	pg := source.NewPostgresSource(db.Pool, log.WithComponent("postgres"))
	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}
	n, err := pg.Import(ctx, customers)
	if err != nil {
		return err
	}
	PrintSuccess(out, fmt.Sprintf("Imported %d customers from %s", n, file.Name()))

	// 3. 캐시 무효화
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		PrintWarning(out, "Redis unavailable, snapshot cache not invalidated")
		return nil
	}
	defer rdb.Close()

	if rdb.Enabled() {
		cached := source.NewCachedSource(pg, redis.NewCache(rdb, "c360"), 0, log.WithComponent("cache"))
		if err := cached.Invalidate(ctx); err != nil {
			PrintWarning(out, fmt.Sprintf("Snapshot cache not invalidated: %v", err))
			return nil
		}
		PrintInfo(out, "Snapshot cache invalidated")
	}

	return nil
}
