package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/digicorp/employee-history/internal/adapters/http/handler"
	"github.com/digicorp/employee-history/internal/adapters/http/middleware"
	"github.com/digicorp/employee-history/internal/platform/config"
	"github.com/digicorp/employee-history/internal/platform/metrics"
)

// Server は HTTP サーバーのライフサイクルを管理します。
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// New は指定されたアドレスで待ち受ける HTTP サーバーを構築します。
func New(cfg config.ServerConfig, logger *slog.Logger, m *metrics.Metrics, employees *handler.EmployeeHandler, departments *handler.DepartmentHandler) *Server {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithLogging(logger))
	r.Use(middleware.WithMetrics(m))
	r.Use(middleware.WithRecovery(logger))

	departments.Register(r)
	employees.Register(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると graceful shutdown します。
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serve http: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
