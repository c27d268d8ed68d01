package infrastructure

import (
	"encoding/json"
	"fmt"

	"github.com/Francouer/deno-sync/internal/domain"
)

type ManifestRepositoryImpl struct {
	logger   domain.Logger
	fileRepo domain.FileRepository
}

// packageManifest represents the sections of package.json the sync reads
type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	PackageManager  string            `json:"packageManager"`
}

// NewManifestRepository creates a new package.json repository
func NewManifestRepository(logger domain.Logger, fileRepo domain.FileRepository) domain.ManifestRepository {
	return &ManifestRepositoryImpl{
		logger:   logger,
		fileRepo: fileRepo,
	}
}

func (m *ManifestRepositoryImpl) ParseManifest(manifestPath string) (*domain.Manifest, error) {
	if !m.fileRepo.FileExists(manifestPath) {
		return nil, fmt.Errorf("package.json file not found at: %s", manifestPath)
	}

	data, err := m.fileRepo.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json file: %w", err)
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}

	return &domain.Manifest{
		Dependencies:    manifest.Dependencies,
		DevDependencies: manifest.DevDependencies,
		PackageManager:  manifest.PackageManager,
	}, nil
}
