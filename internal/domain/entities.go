package domain

import (
	"fmt"
	"strings"
)

// PrecisionMode controls how many dot-separated segments of a resolved
// version are written into the import map
type PrecisionMode string

const (
	PrecisionAuto  PrecisionMode = "auto"
	PrecisionMajor PrecisionMode = "major"
	PrecisionMinor PrecisionMode = "minor"
	PrecisionFull  PrecisionMode = "full"
)

// ParsePrecisionMode validates a precision flag value, defaulting to auto
func ParsePrecisionMode(value string) (PrecisionMode, error) {
	switch PrecisionMode(value) {
	case "":
		return PrecisionAuto, nil
	case PrecisionAuto, PrecisionMajor, PrecisionMinor, PrecisionFull:
		return PrecisionMode(value), nil
	default:
		return "", fmt.Errorf("invalid precision mode %q (expected auto, major, minor or full)", value)
	}
}

// PackageManager identifies the package manager owning a workspace
type PackageManager string

const (
	PackageManagerPnpm    PackageManager = "pnpm"
	PackageManagerNpm     PackageManager = "npm"
	PackageManagerYarn    PackageManager = "yarn"
	PackageManagerBun     PackageManager = "bun"
	PackageManagerUnknown PackageManager = ""
)

const (
	catalogMarker = "catalog:"

	// DefaultCatalogName selects the flat catalog mapping in pnpm-workspace.yaml
	DefaultCatalogName = "default"
)

// CatalogReference is the parsed form of a "catalog:" version range
type CatalogReference struct {
	Name string
}

// ParseCatalogReference reports whether a version range is a catalog
// indirection. A bare "catalog:" (or one with only whitespace after the
// marker) refers to the default catalog.
func ParseCatalogReference(versionRange string) (CatalogReference, bool) {
	if !strings.HasPrefix(versionRange, catalogMarker) {
		return CatalogReference{}, false
	}

	name := strings.TrimSpace(strings.TrimPrefix(versionRange, catalogMarker))
	if name == "" {
		name = DefaultCatalogName
	}

	return CatalogReference{Name: name}, true
}

// Manifest holds the version-range declarations from package.json
type Manifest struct {
	Dependencies    map[string]string
	DevDependencies map[string]string
	PackageManager  string
}

// RangeFor returns the declared range for a package name. The
// devDependencies declaration wins when a package appears in both sections.
func (m *Manifest) RangeFor(name string) (string, bool) {
	if r, ok := m.DevDependencies[name]; ok {
		return r, true
	}
	if r, ok := m.Dependencies[name]; ok {
		return r, true
	}
	return "", false
}

// WorkspaceCatalogs holds the catalog sections of pnpm-workspace.yaml
type WorkspaceCatalogs struct {
	Default map[string]string
	Named   map[string]map[string]string
}

// Lookup resolves a package within the selected catalog
func (w *WorkspaceCatalogs) Lookup(pkg, catalogName string) (string, bool) {
	if catalogName == DefaultCatalogName {
		r, ok := w.Default[pkg]
		return r, ok
	}

	bucket, ok := w.Named[catalogName]
	if !ok {
		return "", false
	}
	r, ok := bucket[pkg]
	return r, ok
}

// ImportEntry is one textual member of the import map's imports object
type ImportEntry struct {
	Alias     string
	Specifier string
}

// Change records one rewritten import map entry
type Change struct {
	Name       string
	OldVersion string
	NewVersion string
}

// SyncResult represents the result of a sync operation
type SyncResult struct {
	Changed bool
	Changes []Change
}

// SyncConfig represents the configuration for syncing the import map
type SyncConfig struct {
	ImportMapPath string
	ManifestPath  string
	Precision     PrecisionMode
	Silent        bool
	DryRun        bool
}
