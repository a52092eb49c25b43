package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	audioimpl "github.com/foxseedlab/koetype/external/audio"
	configloader "github.com/foxseedlab/koetype/external/config"
	outputimpl "github.com/foxseedlab/koetype/external/output"
	repositoryimpl "github.com/foxseedlab/koetype/external/repository"
	transcriberimpl "github.com/foxseedlab/koetype/external/transcriber"
	webhookimpl "github.com/foxseedlab/koetype/external/webhook"
	"github.com/foxseedlab/koetype/internal/config"
	"github.com/foxseedlab/koetype/internal/session"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching dictation engine")
	runEngine(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, session.StatusFunc(logStatus))
	repositoryimpl.RegisterDI(injector)
	audioimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	outputimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	session.RegisterDI(injector)

	return injector
}

func logStatus(state session.State) {
	slog.Info("dictation state changed", "state", string(state))
}

func runEngine(injector do.Injector) {
	controller, err := do.Invoke[*session.Controller](injector)
	if err != nil {
		slog.Error("failed to resolve session controller", "error", err)
		os.Exit(1)
	}

	if err := controller.Start(); err != nil {
		slog.Error("failed to start dictation", "error", err)
		os.Exit(1)
	}

	toggleCh := make(chan os.Signal, 1)
	signal.Notify(toggleCh, syscall.SIGUSR1)
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-toggleCh:
			controller.Toggle()
		case <-stopCh:
			slog.Info("shutting down")
			controller.Stop()
			return
		}
	}
}
