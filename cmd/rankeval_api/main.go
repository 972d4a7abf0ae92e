// Package main rankeval API
// @title rankeval API
// @version 1.0
// @description Cutoff-based precision@k and recall@k evaluation of ranking scores
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	_ "github.com/DjordjeVuckovic/rankeval/internal/api/docs"
	"github.com/DjordjeVuckovic/rankeval/internal/api/router"
	"github.com/DjordjeVuckovic/rankeval/internal/api/server"
	"github.com/DjordjeVuckovic/rankeval/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration", "error", err)
		os.Exit(1)
	}

	store, cleanup, err := factory.NewRunStore(context.Background(), storageCfg)
	if err != nil {
		slog.Error("Failed to create run store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	s := server.New(sCfg, store).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "rankeval API is running")
	})

	var routerOpts []router.EvalRouterOption
	if w, err := strconv.Atoi(os.Getenv("EVAL_WORKERS")); err == nil && w > 0 {
		routerOpts = append(routerOpts, router.WithWorkers(w))
	}
	router.NewEvalRouter(s.Echo, store, routerOpts...).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	slog.Info("Starting rankeval API", "port", sCfg.Port, "storage", storageCfg.Type)
	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
