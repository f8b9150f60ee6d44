package emit

import (
	"context"
	"fmt"
	"path/filepath"
)

// Template is a generated file registered for writing
type Template struct {
	Filename    string                 // File name inside the build directory
	GetContents func() (string, error) // Produces the file content; errors fail the build
	Dst         string                 // Explicit destination, overrides BuildDir/Filename
}

// Destination returns where the template is written relative to buildDir
func (t Template) Destination(buildDir string) string {
	if t.Dst != "" {
		return t.Dst
	}
	return filepath.Join(buildDir, t.Filename)
}

// Writer writes templates into a build directory
type Writer struct {
	BuildDir string
}

// NewWriter creates a Writer for buildDir
func NewWriter(buildDir string) *Writer {
	return &Writer{BuildDir: buildDir}
}

// Write renders t and writes it to its destination. It returns the
// destination and whether the file content changed.
func (w *Writer) Write(ctx context.Context, t Template) (string, bool, error) {
	if t.GetContents == nil {
		return "", false, fmt.Errorf("template %s has no content generator", t.Filename)
	}

	dst := t.Destination(w.BuildDir)
	contents, err := t.GetContents()
	if err != nil {
		return dst, false, fmt.Errorf("failed to generate %s: %w", t.Filename, err)
	}

	changed, err := LockAndWrite(ctx, dst, []byte(contents))
	if err != nil {
		return dst, false, err
	}
	return dst, changed, nil
}
