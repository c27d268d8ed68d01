package interfaces

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Francouer/deno-sync/internal/domain"
	"github.com/spf13/cobra"
)

type CLIHandler struct {
	service     domain.SyncService
	catalogRepo domain.CatalogRepository
	logger      domain.Logger
}

// NewCLIHandler creates a new CLI handler
func NewCLIHandler(service domain.SyncService, catalogRepo domain.CatalogRepository, logger domain.Logger) *CLIHandler {
	return &CLIHandler{
		service:     service,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CreateRootCommand creates the root cobra command
func (c *CLIHandler) CreateRootCommand() *cobra.Command {
	var config domain.SyncConfig
	var precision string
	var check bool

	rootCmd := &cobra.Command{
		Use:   "deno-sync",
		Short: "Sync Deno import map versions with package.json",
		Long: `Deno Sync rewrites the npm: and jsr: specifiers in a Deno import map so their
embedded versions match what package.json declares, resolving pnpm catalog
references along the way. Entries already in sync (and entries it does not
recognize) are left byte-for-byte untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParsePrecisionMode(precision)
			if err != nil {
				return err
			}
			config.Precision = mode
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.handleSync(cmd.Context(), &config, check)
		},
	}

	// Add flags
	c.addFlags(rootCmd, &config, &precision, &check)

	// Add subcommands
	rootCmd.AddCommand(c.createCatalogsCommand(&config))

	return rootCmd
}

func (c *CLIHandler) addFlags(cmd *cobra.Command, config *domain.SyncConfig, precision *string, check *bool) {
	// Set default values from environment variables or defaults
	defaultImportMap := getEnvOrDefault("DENO_JSON_PATH", "./deno.json")
	defaultManifest := getEnvOrDefault("PACKAGE_JSON_PATH", "./package.json")

	cmd.PersistentFlags().StringVarP(&config.ImportMapPath, "import-map", "i", defaultImportMap, "Path to the Deno import map (deno.json)")
	cmd.PersistentFlags().StringVarP(&config.ManifestPath, "package-json", "p", defaultManifest, "Path to package.json")
	cmd.Flags().StringVar(precision, "precision", "auto", "Version precision to write: auto, major, minor or full")
	cmd.Flags().BoolVarP(&config.Silent, "silent", "s", false, "Suppress banner and per-change output")
	cmd.Flags().BoolVarP(&config.DryRun, "dry-run", "d", false, "Report changes without writing the import map")
	cmd.Flags().BoolVar(check, "check", false, "Exit non-zero when entries are out of sync (implies --dry-run)")
}

func (c *CLIHandler) createCatalogsCommand(config *domain.SyncConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List catalog entries from the enclosing pnpm workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.handleCatalogs(config)
		},
	}
}

func (c *CLIHandler) handleSync(ctx context.Context, config *domain.SyncConfig, check bool) error {
	if check {
		config.DryRun = true
	}

	result, err := c.service.Sync(ctx, config)
	if err != nil {
		return err
	}

	if check && result.Changed {
		return fmt.Errorf("import map is out of sync: %d entry(ies) need updating", len(result.Changes))
	}

	return nil
}

func (c *CLIHandler) handleCatalogs(config *domain.SyncConfig) error {
	startDir, err := filepath.Abs(config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", config.ManifestPath, err)
	}
	startDir = filepath.Dir(startDir)

	root, ok := c.catalogRepo.FindWorkspaceRoot(startDir)
	if !ok {
		return fmt.Errorf("no pnpm-workspace.yaml found above %s", startDir)
	}

	catalogs, ok := c.catalogRepo.ReadWorkspaceCatalogs(root)
	if !ok {
		return fmt.Errorf("failed to read workspace catalogs at %s", root)
	}

	fmt.Printf("--- Catalogs in %s ---\n", root)
	printCatalog(domain.DefaultCatalogName, catalogs.Default)

	names := make([]string, 0, len(catalogs.Named))
	for name := range catalogs.Named {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		printCatalog(name, catalogs.Named[name])
	}

	return nil
}

func printCatalog(name string, entries map[string]string) {
	if len(entries) == 0 {
		return
	}

	fmt.Printf("%s:\n", name)

	packages := make([]string, 0, len(entries))
	for pkg := range entries {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	for _, pkg := range packages {
		fmt.Printf("  %s: %s\n", pkg, entries[pkg])
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
