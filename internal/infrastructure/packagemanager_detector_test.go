package infrastructure

import (
	"context"
	"testing"

	"github.com/Francouer/deno-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector() domain.PackageManagerDetector {
	logger := nopLogger{}
	return NewPackageManagerDetector(logger, NewFileRepository(logger))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  domain.PackageManager
	}{
		{
			name:  "packageManager field",
			files: map[string]string{"package.json": `{"packageManager":"pnpm@9.1.0"}`},
			want:  domain.PackageManagerPnpm,
		},
		{
			name: "packageManager field wins over lockfile",
			files: map[string]string{
				"package.json":   `{"packageManager":"npm@10.2.4"}`,
				"pnpm-lock.yaml": "lockfileVersion: '9.0'\n",
			},
			want: domain.PackageManagerNpm,
		},
		{
			name: "unrecognized field falls back to lockfile",
			files: map[string]string{
				"package.json": `{"packageManager":"deno@1.44.0"}`,
				"yarn.lock":    "",
			},
			want: domain.PackageManagerYarn,
		},
		{
			name:  "pnpm lockfile",
			files: map[string]string{"pnpm-lock.yaml": ""},
			want:  domain.PackageManagerPnpm,
		},
		{
			name:  "yarn lockfile",
			files: map[string]string{"yarn.lock": ""},
			want:  domain.PackageManagerYarn,
		},
		{
			name:  "bun binary lockfile",
			files: map[string]string{"bun.lockb": ""},
			want:  domain.PackageManagerBun,
		},
		{
			name:  "bun text lockfile",
			files: map[string]string{"bun.lock": ""},
			want:  domain.PackageManagerBun,
		},
		{
			name:  "npm lockfile",
			files: map[string]string{"package-lock.json": "{}"},
			want:  domain.PackageManagerNpm,
		},
		{
			name:  "npm shrinkwrap",
			files: map[string]string{"npm-shrinkwrap.json": "{}"},
			want:  domain.PackageManagerNpm,
		},
		{
			name:  "workspace yaml alone means pnpm",
			files: map[string]string{WorkspaceFileName: "catalog: {}\n"},
			want:  domain.PackageManagerPnpm,
		},
		{
			name:  "nothing",
			files: map[string]string{},
			want:  domain.PackageManagerUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeTestFile(t, dir, name, content)
			}

			manager, err := newDetector().Detect(context.Background(), dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, manager)
		})
	}
}

func TestDetectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newDetector().Detect(ctx, t.TempDir())
	assert.Error(t, err)
}
