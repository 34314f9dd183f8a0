package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wonny/c360/internal/dashconfig"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "대시보드 설정(YAML) 검증/조회",
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "대시보드 설정 검증 + 해시 출력",
	Long: `설정 파일을 읽고 검증합니다. 필수 제약 위반은 에러로 종료하고,
권장 위반은 경고로만 출력합니다.

Example:
  go run ./cmd/c360 config check config/dashboard.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigCheck,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "적용 중인 대시보드 설정 출력 (기본값 포함)",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configShowCmd)
}

func configPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, _, err := loadConfig(false)
	if err != nil {
		return "", err
	}
	return cfg.DashboardConfigPath, nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path, err := configPath(args)
	if err != nil {
		return err
	}
	if path == "" {
		PrintInfo(out, "No dashboard config set, checking built-in defaults")
	}

	cfg, err := dashconfig.LoadOrDefault(path)
	if err != nil {
		return err
	}
	stamp, err := dashconfig.NewStamp(cfg)
	if err != nil {
		return err
	}

	PrintHeader(out, "Dashboard config")
	PrintKeyValue(out, "Dashboard ID", stamp.DashboardID, 14)
	PrintKeyValue(out, "Config hash", stamp.ConfigHash, 14)

	warnings := dashconfig.Warn(cfg)
	for _, w := range warnings {
		PrintWarning(out, fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	if len(warnings) == 0 {
		PrintSuccess(out, "Config is valid")
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath(nil)
	if err != nil {
		return err
	}

	cfg, err := dashconfig.LoadOrDefault(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
