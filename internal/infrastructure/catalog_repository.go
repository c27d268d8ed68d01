package infrastructure

import (
	"context"
	"path/filepath"

	"github.com/Francouer/deno-sync/internal/domain"
	"gopkg.in/yaml.v3"
)

// WorkspaceFileName is the pnpm workspace document that carries catalogs
const WorkspaceFileName = "pnpm-workspace.yaml"

type CatalogRepositoryImpl struct {
	logger   domain.Logger
	fileRepo domain.FileRepository
	detector domain.PackageManagerDetector
}

// workspaceConfig represents the catalog sections of pnpm-workspace.yaml
type workspaceConfig struct {
	Catalog  map[string]string            `yaml:"catalog"`
	Catalogs map[string]map[string]string `yaml:"catalogs"`
}

// NewCatalogRepository creates a new pnpm catalog repository
func NewCatalogRepository(
	logger domain.Logger,
	fileRepo domain.FileRepository,
	detector domain.PackageManagerDetector,
) domain.CatalogRepository {
	return &CatalogRepositoryImpl{
		logger:   logger,
		fileRepo: fileRepo,
		detector: detector,
	}
}

// FindWorkspaceRoot walks parent directories from startPath until it finds
// pnpm-workspace.yaml. A stat failure at one level (permissions included)
// counts as "not here" and the walk continues upward.
func (c *CatalogRepositoryImpl) FindWorkspaceRoot(startPath string) (string, bool) {
	dir, err := filepath.Abs(startPath)
	if err != nil {
		return "", false
	}

	for {
		if c.fileRepo.FileExists(filepath.Join(dir, WorkspaceFileName)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ReadWorkspaceCatalogs is best effort: an absent or unparsable workspace
// document means no catalog resolution is possible, not a failed run
func (c *CatalogRepositoryImpl) ReadWorkspaceCatalogs(workspaceRoot string) (*domain.WorkspaceCatalogs, bool) {
	path := filepath.Join(workspaceRoot, WorkspaceFileName)

	data, err := c.fileRepo.ReadFile(path)
	if err != nil {
		c.logger.Debug("Cannot read %s: %v", path, err)
		return nil, false
	}

	var config workspaceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		c.logger.Debug("Cannot parse %s: %v", path, err)
		return nil, false
	}

	return &domain.WorkspaceCatalogs{
		Default: config.Catalog,
		Named:   config.Catalogs,
	}, true
}

func (c *CatalogRepositoryImpl) Resolve(pkg, catalogName, workspaceRoot string) (string, bool) {
	catalogs, ok := c.ReadWorkspaceCatalogs(workspaceRoot)
	if !ok {
		return "", false
	}

	versionRange, ok := catalogs.Lookup(pkg, catalogName)
	if !ok {
		c.logger.Debug("Package %s not found in catalog %q", pkg, catalogName)
		return "", false
	}

	return versionRange, true
}

// ResolveVersion passes non-reference ranges through unchanged. Catalog
// references resolve only when the workspace belongs to pnpm; no other
// package manager supports catalogs.
func (c *CatalogRepositoryImpl) ResolveVersion(ctx context.Context, rangeOrReference, pkg, startDir string) (string, bool) {
	ref, ok := domain.ParseCatalogReference(rangeOrReference)
	if !ok {
		return rangeOrReference, true
	}

	root, ok := c.FindWorkspaceRoot(startDir)
	if !ok {
		c.logger.Debug("No %s found above %s", WorkspaceFileName, startDir)
		return "", false
	}

	manager, err := c.detector.Detect(ctx, root)
	if err != nil || manager != domain.PackageManagerPnpm {
		c.logger.Debug("Catalog reference for %s ignored: workspace at %s is not pnpm", pkg, root)
		return "", false
	}

	return c.Resolve(pkg, ref.Name, root)
}
