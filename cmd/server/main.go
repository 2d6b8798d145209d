// Command server starts the HTTP server only; it is `classifieds serve` without the rest
// of the CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/priyakashinagar/ReelPostCity--sub001/config"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		logger.StdLogger().With("main").Fatalf(ctx, "FATAL: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	configFile := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log := logger.StdLogger().With("main")

	// 1. Загружаем конфигурацию приложения
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.StdLogger().Init(logger.Config{Level: cfg.Logger.Level, Format: cfg.Logger.Format, Output: cfg.Logger.Output}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	// 2. Открываем хранилище и собираем сервисы
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// 3. Запускаем веб-сервер до сигнала остановки
	runErr := app.Run(ctx)

	if err := app.Close(); err != nil {
		log.Errorf(ctx, "ERROR: Failed to close store: %v", err)
	} else {
		log.Info(ctx, "Store closed successfully.")
	}
	if runErr != nil {
		return fmt.Errorf("server failed: %w", runErr)
	}
	return nil
}
