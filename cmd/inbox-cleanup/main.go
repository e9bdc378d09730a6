package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/inbox-cleanup-agent/internal/bot"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/di"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	cfg *config.Config,
	logger *zap.Logger,
	service *bot.Service,
	llmClient core.LLMClient,
	analysisCache core.AnalysisCache,
	backups core.BackupStore,
) error {
	defer logger.Sync()

	// Missing credentials are fatal before anything connects
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- service.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down...")
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			logger.Error("Bot service stopped", zap.Error(err))
		}
	}

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	analysisCache.Stop()
	if closer, ok := backups.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close backup store", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
