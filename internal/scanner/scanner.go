package scanner

import (
	"context"
	"fmt"
	"os"

	"github.com/harrison/eslint-globals/internal/fileutil"
	"github.com/harrison/eslint-globals/internal/models"
)

// DefaultOptions matches the files the framework auto-imports from a directory:
// top-level script modules plus one level of index files, no declarations or tests.
var DefaultOptions = fileutil.ScanOptions{
	Extensions:   []string{".ts", ".js", ".mjs", ".cjs", ".mts", ".cts"},
	SkipSuffixes: []string{".d.ts", ".d.mts", ".d.cts", ".test.ts", ".spec.ts", ".test.js", ".spec.js"},
	Recursive:    true,
	MaxDepth:     2,
	ExcludeDirs:  []string{"node_modules"},
}

// Scanner turns directories of modules into auto-import records
type Scanner struct {
	opts fileutil.ScanOptions
}

// New creates a Scanner using DefaultOptions
func New() *Scanner {
	return &Scanner{opts: DefaultOptions}
}

// NewWithOptions creates a Scanner with custom traversal options
func NewWithOptions(opts fileutil.ScanOptions) *Scanner {
	return &Scanner{opts: opts}
}

// ScanDir returns one Import per exported value found under dir. From is the
// file the export was found in. Nested files only contribute when they are
// index modules, mirroring how directory auto-imports resolve.
func (s *Scanner) ScanDir(ctx context.Context, dir string) ([]models.Import, error) {
	result, err := fileutil.ScanDirectory(dir, s.opts)
	if err != nil {
		return nil, err
	}

	var imports []models.Import
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !topLevelOrIndex(dir, file) {
			continue
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		ex := ParseExports(string(data))
		for _, name := range ex.Names {
			imports = append(imports, models.Import{Name: name, From: file})
		}
		if ex.Default {
			imports = append(imports, models.Import{Name: "default", As: DefaultExportName(relOrSelf(dir, file)), From: file})
		}
	}

	return imports, nil
}

// ScanDirs scans each directory in order and concatenates the results
func (s *Scanner) ScanDirs(ctx context.Context, dirs []string) ([]models.Import, error) {
	var all []models.Import
	for _, dir := range dirs {
		imports, err := s.ScanDir(ctx, dir)
		if err != nil {
			return nil, err
		}
		all = append(all, imports...)
	}
	return all, nil
}
