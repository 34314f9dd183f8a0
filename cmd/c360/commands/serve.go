package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/c360/internal/api"
	"github.com/wonny/c360/internal/api/handlers"
	"github.com/wonny/c360/internal/scheduler"
	"github.com/wonny/c360/internal/scheduler/jobs"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 + 스냅샷 스케줄러 시작",
	Long: `REST API 서버와 스냅샷 재적재 스케줄러를 함께 시작합니다.

이 명령어는:
- 고객 스냅샷 최초 적재 (실패 시 종료)
- HTTP API 서버 시작
- refresh.schedule 주기로 스냅샷 재적재
- 1분마다 DB/Redis 헬스 체크

Endpoints:
  GET  /health                   - Health check
  GET  /api/customers            - 고객 목록 (필터/검색/정렬/limit)
  GET  /api/customers/{id}       - 고객 프로필 + 포트폴리오 비교
  GET  /api/portfolio/averages   - 포트폴리오 평균
  GET  /api/portfolio/summary    - 요약 지표
  GET  /api/snapshot             - 스냅샷 정보
  POST /api/snapshot/reload      - 스냅샷 즉시 재적재
  GET  /api/config               - 대시보드 설정
  GET  /api/scheduler/jobs       - 스케줄러 Job 상태
  POST /api/scheduler/jobs/{name}/run - Job 즉시 실행

Example:
  go run ./cmd/c360 serve
  go run ./cmd/c360 serve --port 8090`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	if servePort != "" {
		rt.cfg.Port = servePort
	}

	// 1. Initial snapshot load
	info, err := rt.snapshot.Load(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot load: %w", err)
	}

	// 2. Scheduler
	var dbChecker handlers.DBChecker
	if rt.db != nil {
		dbChecker = rt.db
	}

	sched := scheduler.New(rt.log.WithComponent("scheduler"), scheduler.WithRetry(2, 10*time.Second))
	if rt.dash.Refresh.Enabled() {
		job := jobs.NewSnapshotRefreshJob(rt.snapshot, rt.dash.Refresh.Schedule, rt.log.WithComponent("refresh"))
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("schedule snapshot refresh: %w", err)
		}
	}
	if err := sched.AddJob(jobs.NewHealthCheckJob(dbChecker, rt.redis, rt.log.WithComponent("health"))); err != nil {
		return fmt.Errorf("schedule health check: %w", err)
	}

	// 3. HTTP API
	clients, err := api.NewClientResolver(rt.cfg.API.TrustedProxies)
	if err != nil {
		return fmt.Errorf("API_TRUSTED_PROXIES: %w", err)
	}

	apiLog := rt.log.WithComponent("api")
	router := api.NewRouter(api.Handlers{
		Health:    handlers.NewHealthHandler(rt.snapshot, dbChecker, rt.redis),
		Customers: handlers.NewCustomerHandler(rt.snapshot, rt.pipeline, rt.stamp, apiLog),
		Snapshots: handlers.NewSnapshotHandler(rt.snapshot, rt.dash, rt.stamp, apiLog),
		Scheduler: handlers.NewSchedulerHandler(sched, apiLog),
	}, api.NewLimiter(rt.cfg.API, rt.redis), clients, rt.log)
	server := api.NewServer(rt.cfg.Port, router, rt.log)

	out := cmd.OutOrStdout()
	PrintSuccess(out, fmt.Sprintf("Snapshot loaded: %d customers from %s", info.Count, info.Source))
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", rt.cfg.Port))
	PrintInfo(out, "Scheduled jobs: "+fmt.Sprint(sched.GetAllJobs()))
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	// 4. Run until signal or failure
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.ListenAndRun(gctx)
	})

	g.Go(func() error {
		sched.Start()
		<-gctx.Done()
		sched.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	rt.log.Info("Server stopped")
	return nil
}
