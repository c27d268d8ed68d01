package domain

import "context"

// Logger defines the logging interface
type Logger interface {
	Info(msg string, args ...interface{})
	Success(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
}

// FileRepository handles file system operations
type FileRepository interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	FileExists(path string) bool
}

// ManifestRepository handles package.json operations
type ManifestRepository interface {
	ParseManifest(manifestPath string) (*Manifest, error)
}

// ImportMapDocument is an in-memory deno.json that preserves member order
// and the byte content of untouched values across a load/encode round trip
type ImportMapDocument interface {
	Entries() []ImportEntry
	SetSpecifier(alias, specifier string) bool
	Encode() ([]byte, error)
}

// ImportMapRepository handles deno.json operations
type ImportMapRepository interface {
	Load(importMapPath string) (ImportMapDocument, error)
}

// CatalogRepository resolves pnpm catalog references against the
// workspace-level pnpm-workspace.yaml document. Every miss is an ok=false,
// never an error.
type CatalogRepository interface {
	FindWorkspaceRoot(startPath string) (string, bool)
	ReadWorkspaceCatalogs(workspaceRoot string) (*WorkspaceCatalogs, bool)
	Resolve(pkg, catalogName, workspaceRoot string) (string, bool)
	ResolveVersion(ctx context.Context, rangeOrReference, pkg, startDir string) (string, bool)
}

// PackageManagerDetector determines which package manager owns a directory
type PackageManagerDetector interface {
	Detect(ctx context.Context, dir string) (PackageManager, error)
}

// SyncService defines the main service interface
type SyncService interface {
	Sync(ctx context.Context, config *SyncConfig) (*SyncResult, error)
	ValidateConfig(config *SyncConfig) error
}
