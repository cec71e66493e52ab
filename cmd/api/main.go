package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-catalog/internal/audit"
	"github.com/BruksfildServices01/service-catalog/internal/config"
	dbpkg "github.com/BruksfildServices01/service-catalog/internal/db"
	domain "github.com/BruksfildServices01/service-catalog/internal/domain/catalog"
	"github.com/BruksfildServices01/service-catalog/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/service-catalog/internal/infra/repository"
	"github.com/BruksfildServices01/service-catalog/internal/logger"
	"github.com/BruksfildServices01/service-catalog/internal/metrics"
	"github.com/BruksfildServices01/service-catalog/internal/middleware"
	"github.com/BruksfildServices01/service-catalog/internal/routes"
)

const serviceName = "service-catalog"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting", cfg.LogFields()...)

	repo, store, err := openStorage(cfg)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}

	dispatcher := audit.NewDispatcher(store, log.Named("audit"), cfg.AuditQueueSize)
	m := metrics.New(cfg.MetricsNamespace)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	r.Use(m.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	routes.RegisterRoutes(r, routes.Deps{
		Config:     cfg,
		Repo:       repo,
		AuditStore: store,
		Dispatcher: dispatcher,
		Metrics:    m,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	dispatcher.Close()

	log.Info("stopped")
}

// openStorage picks the catalog repository and audit store for the
// configured driver.
func openStorage(cfg *config.Config) (domain.Repository, audit.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return memory.NewRepository(memory.NewStore()), memory.NewAuditStore(), nil
	case config.StorageDriverPostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		return infraRepo.NewCatalogGormRepository(db), audit.NewGormStore(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
