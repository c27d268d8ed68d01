package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Francouer/deno-sync/internal/domain"
)

type SyncServiceImpl struct {
	logger        domain.Logger
	fileRepo      domain.FileRepository
	manifestRepo  domain.ManifestRepository
	importMapRepo domain.ImportMapRepository
	catalogRepo   domain.CatalogRepository
}

// NewSyncService creates a new import map sync service
func NewSyncService(
	logger domain.Logger,
	fileRepo domain.FileRepository,
	manifestRepo domain.ManifestRepository,
	importMapRepo domain.ImportMapRepository,
	catalogRepo domain.CatalogRepository,
) domain.SyncService {
	return &SyncServiceImpl{
		logger:        logger,
		fileRepo:      fileRepo,
		manifestRepo:  manifestRepo,
		importMapRepo: importMapRepo,
		catalogRepo:   catalogRepo,
	}
}

func (s *SyncServiceImpl) ValidateConfig(config *domain.SyncConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if config.ImportMapPath == "" {
		return fmt.Errorf("import map path is required")
	}

	if config.ManifestPath == "" {
		return fmt.Errorf("package.json path is required")
	}

	if _, err := domain.ParsePrecisionMode(string(config.Precision)); err != nil {
		return err
	}

	// Check if required files exist
	if !s.fileRepo.FileExists(config.ManifestPath) {
		return fmt.Errorf("package.json file not found at: %s", absolutePath(config.ManifestPath))
	}

	if !s.fileRepo.FileExists(config.ImportMapPath) {
		return fmt.Errorf("import map file not found at: %s", absolutePath(config.ImportMapPath))
	}

	return nil
}

func (s *SyncServiceImpl) Sync(ctx context.Context, config *domain.SyncConfig) (*domain.SyncResult, error) {
	if err := s.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	manifest, err := s.manifestRepo.ParseManifest(config.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}

	doc, err := s.importMapRepo.Load(config.ImportMapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load import map: %w", err)
	}

	if !config.Silent {
		s.logger.Info("Syncing %s against %s...", config.ImportMapPath, config.ManifestPath)
	}

	// Catalog references resolve relative to the manifest's directory
	manifestDir := filepath.Dir(absolutePath(config.ManifestPath))

	result := &domain.SyncResult{}

	for _, entry := range doc.Entries() {
		change, ok := s.syncEntry(ctx, entry, manifest, manifestDir, config.Precision)
		if !ok {
			continue
		}

		doc.SetSpecifier(entry.Alias, change.specifier)
		result.Changes = append(result.Changes, domain.Change{
			Name:       change.name,
			OldVersion: change.oldVersion,
			NewVersion: change.newVersion,
		})

		if !config.Silent {
			fmt.Printf("  - %s: %s -> %s\n", change.name, change.oldVersion, change.newVersion)
		}
	}

	result.Changed = len(result.Changes) > 0

	if result.Changed && !config.DryRun {
		data, err := doc.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode import map: %w", err)
		}
		if err := s.fileRepo.WriteFile(config.ImportMapPath, data); err != nil {
			return nil, fmt.Errorf("failed to write import map: %w", err)
		}
	}

	if !config.Silent {
		switch {
		case !result.Changed:
			s.logger.Info("All import map entries are already in sync")
		case config.DryRun:
			s.logger.Info("Dry run: %d entry(ies) would be updated", len(result.Changes))
		default:
			s.logger.Success("Updated %d entry(ies) in %s", len(result.Changes), config.ImportMapPath)
		}
	}

	return result, nil
}

type entryChange struct {
	name       string
	oldVersion string
	newVersion string
	specifier  string
}

// syncEntry decides whether a single import map entry needs rewriting.
// Every failure mode here is recoverable: the entry is simply left as is.
func (s *SyncServiceImpl) syncEntry(
	ctx context.Context,
	entry domain.ImportEntry,
	manifest *domain.Manifest,
	manifestDir string,
	precision domain.PrecisionMode,
) (entryChange, bool) {
	spec, ok := ParseSpecifier(entry.Specifier)
	if !ok {
		s.logger.Debug("Skipping %s: unrecognized specifier %q", entry.Alias, entry.Specifier)
		return entryChange{}, false
	}

	declaredRange, ok := manifest.RangeFor(spec.Name)
	if !ok {
		s.logger.Debug("Skipping %s: not declared in package.json", spec.Name)
		return entryChange{}, false
	}

	resolvedRange, ok := s.catalogRepo.ResolveVersion(ctx, declaredRange, spec.Name, manifestDir)
	if !ok {
		s.logger.Debug("Skipping %s: catalog reference %q did not resolve", spec.Name, declaredRange)
		return entryChange{}, false
	}

	candidate := LeadingNumericVersion(resolvedRange)
	if candidate == "" || candidate == spec.Version {
		return entryChange{}, false
	}

	final := ApplyPrecision(candidate, spec.Version, precision)
	if final == spec.Version {
		return entryChange{}, false
	}

	return entryChange{
		name:       spec.Name,
		oldVersion: spec.Version,
		newVersion: final,
		specifier:  spec.WithVersion(final),
	}, true
}

func absolutePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
