package host

import (
	"context"

	"github.com/harrison/eslint-globals/internal/models"
	"github.com/harrison/eslint-globals/internal/scanner"
)

// ImportContext exposes the auto-import registry to imports:context handlers
type ImportContext struct {
	imports []models.Import
	scanner *scanner.Scanner
}

// NewImportContext creates a context over imports
func NewImportContext(imports []models.Import, s *scanner.Scanner) *ImportContext {
	if s == nil {
		s = scanner.New()
	}
	return &ImportContext{imports: imports, scanner: s}
}

// GetImports returns a copy of the registry
func (c *ImportContext) GetImports(ctx context.Context) ([]models.Import, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]models.Import{}, c.imports...), nil
}

// ScanImportsFromDir returns the exports found in dirs
func (c *ImportContext) ScanImportsFromDir(ctx context.Context, dirs []string) ([]models.Import, error) {
	return c.scanner.ScanDirs(ctx, dirs)
}
