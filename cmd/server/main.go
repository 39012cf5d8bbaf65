package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/digicorp/employee-history/internal/adapters/http/handler"
	"github.com/digicorp/employee-history/internal/adapters/repository/postgres"
	"github.com/digicorp/employee-history/internal/core/department"
	"github.com/digicorp/employee-history/internal/core/employee"
	"github.com/digicorp/employee-history/internal/platform/config"
	pg "github.com/digicorp/employee-history/internal/platform/db/postgres"
	"github.com/digicorp/employee-history/internal/platform/metrics"
	"github.com/digicorp/employee-history/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	deptRepo := postgres.NewDepartmentRepository(dbPool)
	empRepo := postgres.NewEmployeeRepository(dbPool)

	deptSvc := department.NewService(deptRepo, txManager)
	empSvc := employee.NewService(empRepo, deptRepo, nil, txManager)

	m := metrics.New()
	empHandler := handler.NewEmployeeHandler(empSvc, logger, m)
	deptHandler := handler.NewDepartmentHandler(deptSvc, logger)

	httpServer := server.New(cfg.Server, logger, m, empHandler, deptHandler)

	logger.Info("http server listening", "addr", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
