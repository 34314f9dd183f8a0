package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/wonny/c360/pkg/logger"
)

// ShutdownTimeout bounds how long in-flight requests may drain
const ShutdownTimeout = 30 * time.Second

// Server serves the customer API until its context ends
// ⭐ SSOT: API 서버 설정은 이 파일에서만
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer creates the API server for :port
func NewServer(port string, router http.Handler, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + port,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second, // profile + reload can run long on big snapshots
			IdleTimeout:       60 * time.Second,
		},
		logger: log,
	}
}

// ListenAndRun listens on the configured port and calls Run
func (s *Server) ListenAndRun(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Run(ctx, ln)
}

// Run serves on ln. When ctx is cancelled the server stops accepting and
// waits up to ShutdownTimeout for in-flight requests.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	s.logger.WithField("addr", ln.Addr().String()).Info("Starting API server")

	served := make(chan error, 1)
	go func() {
		served <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
