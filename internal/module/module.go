// Package module installs the globals pipeline on a host's lifecycle hooks.
package module

import (
	"context"
	"fmt"

	"github.com/harrison/eslint-globals/internal/companion"
	"github.com/harrison/eslint-globals/internal/globals"
	"github.com/harrison/eslint-globals/internal/host"
	"github.com/harrison/eslint-globals/internal/models"
)

// Name is the module name the host knows it by
const Name = "eslint-globals"

// Options configures Install
type Options struct {
	ModulePath string             // Named in the banner of the generated file
	WorkingDir string             // Anchors the display path
	Resolver   companion.Resolver // Defaults to package lookup with the static lists as fallback
	Logger     globals.Logger
}

// Module is an installed pipeline. It wraps the three phases as host hooks:
// imports:context collects, imports:extend adds composables and
// modules:done renders and registers the template.
type Module struct {
	pipeline *globals.Pipeline
	table    models.GroupTable
	paths    models.Paths
}

// Install registers the pipeline phases on n
func Install(n *host.Nuxt, settings models.Settings, opts Options) *Module {
	project := n.Manifest.Project()
	if opts.Resolver == nil {
		opts.Resolver = DefaultResolver(project.RootDir)
	}

	m := &Module{
		pipeline: globals.NewPipeline(settings, project, globals.Options{
			Resolver:   opts.Resolver,
			Sink:       n,
			Logger:     opts.Logger,
			ModulePath: opts.ModulePath,
			WorkingDir: opts.WorkingDir,
		}),
	}

	n.Hook(host.HookImportsContext, m.onImportsContext)
	n.Hook(host.HookImportsExtend, m.onImportsExtend)
	n.Hook(host.HookModulesDone, m.onModulesDone)
	return m
}

// DefaultResolver looks companion libraries up in the project's
// node_modules and falls back to the built-in lists
func DefaultResolver(rootDir string) companion.Resolver {
	return companion.Chain{companion.NewPackage(rootDir), companion.DefaultStatic()}
}

// Paths returns the artifact locations once modules:done has run
func (m *Module) Paths() models.Paths {
	return m.paths
}

// Table returns the group table as of the last completed phase
func (m *Module) Table() models.GroupTable {
	return m.table
}

func (m *Module) onImportsContext(ctx context.Context, payload interface{}) error {
	ic, ok := payload.(*host.ImportContext)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", host.HookImportsContext, payload)
	}
	table, err := m.pipeline.Collect(ctx, importSource{ic})
	if err != nil {
		return err
	}
	m.table = table
	return nil
}

func (m *Module) onImportsExtend(ctx context.Context, payload interface{}) error {
	composables, ok := payload.(*[]models.Import)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", host.HookImportsExtend, payload)
	}
	table, err := m.pipeline.Extend(ctx, m.table, *composables)
	if err != nil {
		return err
	}
	m.table = table
	return nil
}

func (m *Module) onModulesDone(ctx context.Context, _ interface{}) error {
	paths, err := m.pipeline.Finalize(ctx, m.table)
	if err != nil {
		return err
	}
	m.paths = paths
	return nil
}

// importSource adapts the host's import context to globals.ImportSource
type importSource struct {
	ic *host.ImportContext
}

func (s importSource) Imports(ctx context.Context) ([]models.Import, error) {
	return s.ic.GetImports(ctx)
}

func (s importSource) ScanDir(ctx context.Context, dir string) ([]models.Import, error) {
	return s.ic.ScanImportsFromDir(ctx, []string{dir})
}
