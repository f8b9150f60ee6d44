package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/harrison/eslint-globals/internal/emit"
	"github.com/harrison/eslint-globals/internal/logger"
	"github.com/harrison/eslint-globals/internal/models"
	"github.com/harrison/eslint-globals/internal/scanner"
)

// Logger is the logging surface the host needs
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// Written describes one template after Run
type Written struct {
	Filename    string
	Destination string
	Changed     bool // false when the file already had this content or in dry-run mode
}

// Nuxt drives the lifecycle of one build
type Nuxt struct {
	Manifest *Manifest
	Hooks    *Hooks

	// DryRun, when set, receives template contents instead of the filesystem
	DryRun io.Writer

	scanner *scanner.Scanner
	logger  Logger

	mu        sync.Mutex
	templates []emit.Template
}

// New creates a host for m
func New(m *Manifest, log Logger) *Nuxt {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Nuxt{
		Manifest: m,
		Hooks:    NewHooks(),
		scanner:  scanner.New(),
		logger:   log,
	}
}

// Hook registers fn on the host's hook registry
func (n *Nuxt) Hook(name string, fn HookFunc) {
	n.Hooks.Hook(name, fn)
}

// AddTemplate registers a generated file; it is written at the end of Run
func (n *Nuxt) AddTemplate(t emit.Template) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.templates = append(n.templates, t)
}

// Templates returns the registered templates
func (n *Nuxt) Templates() []emit.Template {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]emit.Template{}, n.templates...)
}

// Run calls imports:context, imports:extend and modules:done in that order,
// then writes every registered template.
func (n *Nuxt) Run(ctx context.Context) ([]Written, error) {
	ic := NewImportContext(n.Manifest.Imports, n.scanner)
	if err := n.Hooks.CallHook(ctx, HookImportsContext, ic); err != nil {
		return nil, err
	}

	composables, err := n.composables(ctx)
	if err != nil {
		return nil, err
	}
	if err := n.Hooks.CallHook(ctx, HookImportsExtend, &composables); err != nil {
		return nil, err
	}

	if err := n.Hooks.CallHook(ctx, HookModulesDone, nil); err != nil {
		return nil, err
	}

	return n.writeTemplates(ctx)
}

// composables returns the manifest's list, or scans the composable
// directories when the manifest has none. Missing directories are skipped.
func (n *Nuxt) composables(ctx context.Context) ([]models.Import, error) {
	if n.Manifest.Composables != nil {
		return append([]models.Import{}, n.Manifest.Composables...), nil
	}

	var all []models.Import
	for _, dir := range n.Manifest.ComposableDirs {
		imports, err := n.scanner.ScanDir(ctx, dir)
		if errors.Is(err, fs.ErrNotExist) {
			n.logger.Debugf("Skipping missing composables directory %s", dir)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan composables in %s: %w", dir, err)
		}
		all = append(all, imports...)
	}
	return all, nil
}

func (n *Nuxt) writeTemplates(ctx context.Context) ([]Written, error) {
	templates := n.Templates()
	written := make([]Written, 0, len(templates))

	if n.DryRun != nil {
		for _, t := range templates {
			if t.GetContents == nil {
				return nil, fmt.Errorf("template %s has no content generator", t.Filename)
			}
			contents, err := t.GetContents()
			if err != nil {
				return nil, fmt.Errorf("failed to generate %s: %w", t.Filename, err)
			}
			if _, err := io.WriteString(n.DryRun, contents); err != nil {
				return nil, err
			}
			written = append(written, Written{Filename: t.Filename, Destination: t.Destination(n.Manifest.BuildDir)})
		}
		return written, nil
	}

	w := emit.NewWriter(n.Manifest.BuildDir)
	for _, t := range templates {
		dst, changed, err := w.Write(ctx, t)
		if err != nil {
			return nil, err
		}
		if changed {
			n.logger.Debugf("Wrote %s", dst)
		} else {
			n.logger.Debugf("%s is up to date", dst)
		}
		written = append(written, Written{Filename: t.Filename, Destination: dst, Changed: changed})
	}
	return written, nil
}
