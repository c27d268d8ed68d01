package infrastructure

import (
	"os"

	"github.com/Francouer/deno-sync/internal/domain"
)

type FileRepositoryImpl struct {
	logger domain.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(logger domain.Logger) domain.FileRepository {
	return &FileRepositoryImpl{
		logger: logger,
	}
}

func (f *FileRepositoryImpl) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *FileRepositoryImpl) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (f *FileRepositoryImpl) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
