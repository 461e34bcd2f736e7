package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "task-manager.com/task-manager/internal/http"
	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Connects to the task store and serves the task REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		repo, closeRepo, err := openRepository(ctx, cfg, log)
		if err != nil {
			log.Error("failed to connect to task store", zap.Error(err))
			return err
		}
		defer closeRepo()

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := middleware.NewMetrics(registry)
		if err != nil {
			return err
		}

		taskService := services.NewTaskService(repo)

		e := httpapi.NewServer(
			httpapi.NewHandler(taskService),
			httpapi.NewHealthHandler(taskService),
			httpapi.ServerOptions{
				Logger:    log,
				Metrics:   metrics,
				Gatherer:  registry,
				RateLimit: cfg.RateLimit,
				BodyLimit: cfg.BodyLimit,
				StaticDir: cfg.StaticDir,
			},
		)

		serverErr := make(chan error, 1)
		go func() {
			log.Info("HTTP server listening", zap.String("addr", cfg.AppURL))
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case <-ctx.Done():
		case err := <-serverErr:
			if err != nil {
				log.Error("HTTP server failed", zap.Error(err))
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
			return err
		}

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
