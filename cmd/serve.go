package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"NewsHunter/internal/account"
	"NewsHunter/internal/core"
	"NewsHunter/internal/server"
	"NewsHunter/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := core.NewApp(cfg.PlatformConfigs(), cfg.Aggregator.Timeout)
		if err != nil {
			return fmt.Errorf("creating app: %w", err)
		}
		defer app.Close()

		store, err := app.OpenStore(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		srv := server.New(app.Aggregator(), account.NewService(store, cfg.Auth.BcryptCost), server.Options{
			RateLimit:    cfg.Server.RateLimit,
			Burst:        cfg.Server.Burst,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.Server.Addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("收到退出信号，正在关闭服务")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	},
}
