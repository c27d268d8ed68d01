package infrastructure

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/Francouer/deno-sync/internal/domain"
)

type PackageManagerDetectorImpl struct {
	logger   domain.Logger
	fileRepo domain.FileRepository
}

// lockfileMarkers maps lockfile names to their owning package manager,
// probed in order
var lockfileMarkers = []struct {
	file    string
	manager domain.PackageManager
}{
	{"pnpm-lock.yaml", domain.PackageManagerPnpm},
	{"yarn.lock", domain.PackageManagerYarn},
	{"bun.lockb", domain.PackageManagerBun},
	{"bun.lock", domain.PackageManagerBun},
	{"package-lock.json", domain.PackageManagerNpm},
	{"npm-shrinkwrap.json", domain.PackageManagerNpm},
}

// NewPackageManagerDetector creates a new package manager detector
func NewPackageManagerDetector(logger domain.Logger, fileRepo domain.FileRepository) domain.PackageManagerDetector {
	return &PackageManagerDetectorImpl{
		logger:   logger,
		fileRepo: fileRepo,
	}
}

// Detect probes, in order: the corepack packageManager field of the
// directory's package.json, then lockfile markers, then the presence of
// pnpm-workspace.yaml (pnpm-exclusive, so a fresh workspace without a
// lockfile still resolves).
func (d *PackageManagerDetectorImpl) Detect(ctx context.Context, dir string) (domain.PackageManager, error) {
	if err := ctx.Err(); err != nil {
		return domain.PackageManagerUnknown, err
	}

	if manager, ok := d.fromManifestField(dir); ok {
		return manager, nil
	}

	for _, marker := range lockfileMarkers {
		if err := ctx.Err(); err != nil {
			return domain.PackageManagerUnknown, err
		}
		if d.fileRepo.FileExists(filepath.Join(dir, marker.file)) {
			return marker.manager, nil
		}
	}

	if d.fileRepo.FileExists(filepath.Join(dir, WorkspaceFileName)) {
		return domain.PackageManagerPnpm, nil
	}

	return domain.PackageManagerUnknown, nil
}

// fromManifestField reads the packageManager field, a value like "pnpm@9.1.0"
func (d *PackageManagerDetectorImpl) fromManifestField(dir string) (domain.PackageManager, bool) {
	data, err := d.fileRepo.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return domain.PackageManagerUnknown, false
	}

	var manifest struct {
		PackageManager string `json:"packageManager"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil || manifest.PackageManager == "" {
		return domain.PackageManagerUnknown, false
	}

	name, _, _ := strings.Cut(manifest.PackageManager, "@")
	switch manager := domain.PackageManager(name); manager {
	case domain.PackageManagerPnpm, domain.PackageManagerNpm, domain.PackageManagerYarn, domain.PackageManagerBun:
		return manager, true
	default:
		d.logger.Debug("Unrecognized packageManager field %q in %s", manifest.PackageManager, dir)
		return domain.PackageManagerUnknown, false
	}
}
