package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Francouer/deno-sync/internal/app"
	"github.com/Francouer/deno-sync/internal/infrastructure"
	interfaces "github.com/Francouer/deno-sync/internal/interface"
)

func main() {
	// Create context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Initialize dependencies
	logger := infrastructure.NewColorLogger()
	fileRepo := infrastructure.NewFileRepository(logger)
	detector := infrastructure.NewPackageManagerDetector(logger, fileRepo)
	catalogRepo := infrastructure.NewCatalogRepository(logger, fileRepo, detector)
	manifestRepo := infrastructure.NewManifestRepository(logger, fileRepo)
	importMapRepo := infrastructure.NewImportMapRepository(logger, fileRepo)

	// Initialize application service
	syncService := app.NewSyncService(logger, fileRepo, manifestRepo, importMapRepo, catalogRepo)

	// Initialize CLI handler
	cliHandler := interfaces.NewCLIHandler(syncService, catalogRepo, logger)

	// Create root command and execute
	rootCmd := cliHandler.CreateRootCommand()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
