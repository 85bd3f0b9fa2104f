package export

import (
	"fmt"
	"io"
	"os"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

// Exporter writes a flat record set in one output format
type Exporter interface {
	Export(w io.Writer, records []domain.RepositoryRecord) error
}

// WriteFile exports records to path, replacing any existing file
func WriteFile(path string, exporter Exporter, records []domain.RepositoryRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := exporter.Export(f, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to export to %s: %w", path, err)
	}
	return f.Close()
}
