package globals

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harrison/eslint-globals/internal/companion"
	"github.com/harrison/eslint-globals/internal/emit"
	"github.com/harrison/eslint-globals/internal/logger"
	"github.com/harrison/eslint-globals/internal/models"
)

// ErrPhaseOrder is returned when a pipeline phase is invoked out of order
var ErrPhaseOrder = errors.New("pipeline phase out of order")

// Phase is the last completed stage of a Pipeline
type Phase int

const (
	PhaseNew Phase = iota
	PhaseCollected
	PhaseExtended
	PhaseFinalized
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseCollected:
		return "collected"
	case PhaseExtended:
		return "extended"
	case PhaseFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// ImportSource supplies the host's auto-import registry and directory scans
type ImportSource interface {
	Imports(ctx context.Context) ([]models.Import, error)
	ScanDir(ctx context.Context, dir string) ([]models.Import, error)
}

// TemplateSink accepts the generated artifact for writing
type TemplateSink interface {
	AddTemplate(t emit.Template)
}

// Options configures a Pipeline
type Options struct {
	Resolver   companion.Resolver // Companion export discovery; nil disables nitro/h3 groups
	Sink       TemplateSink       // Receives the artifact in Finalize
	Logger     Logger
	ModulePath string // Named in the banner comment
	WorkingDir string // Anchors the display path
}

// Pipeline runs Collect, Extend and Finalize for one invocation. Settings and
// the project are fixed at construction; group tables are passed between
// phases by value. A Pipeline is not reusable.
type Pipeline struct {
	settings  models.Settings
	project   models.Project
	collector *Collector
	opts      Options
	runID     string
	phase     Phase
}

// NewPipeline creates a Pipeline for one run
func NewPipeline(settings models.Settings, project models.Project, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	settings = settings.Clone()
	return &Pipeline{
		settings:  settings,
		project:   project,
		collector: NewCollector(settings, opts.Resolver, opts.Logger),
		opts:      opts,
		runID:     uuid.NewString()[:8],
	}
}

// Phase returns the last completed phase
func (p *Pipeline) Phase() Phase {
	return p.phase
}

// WantsComposables reports whether Extend will use a composables list
func (p *Pipeline) WantsComposables() bool {
	return !p.collector.Filter().Skips(GateComposables)
}

// ServerUtilsDir is the directory scanned for server utilities
func (p *Pipeline) ServerUtilsDir() string {
	return filepath.Join(p.project.ServerDir, "utils")
}

// Collect gathers every provider except composables. The server utils
// directory is scanned unless "server-utils" is excluded; its identifiers
// are grouped under the directory's path relative to the project root.
func (p *Pipeline) Collect(ctx context.Context, src ImportSource) (models.GroupTable, error) {
	if err := p.advance(PhaseCollected, PhaseNew); err != nil {
		return models.GroupTable{}, err
	}

	imports, err := src.Imports(ctx)
	if err != nil {
		return models.GroupTable{}, fmt.Errorf("failed to read auto-imports: %w", err)
	}
	p.opts.Logger.Debugf("[%s] host reported %d auto-imports", p.runID, len(imports))

	var local []models.Import
	if !p.collector.Filter().Skips(GateServerUtils) {
		local, err = p.scanServerUtils(ctx, src)
		if err != nil {
			return models.GroupTable{}, err
		}
	}

	table, err := p.collector.Collect(ctx, imports, local)
	if err != nil {
		return models.GroupTable{}, err
	}
	p.opts.Logger.Debugf("[%s] collected %d groups", p.runID, table.Len())
	return table, nil
}

func (p *Pipeline) scanServerUtils(ctx context.Context, src ImportSource) ([]models.Import, error) {
	dir := p.ServerUtilsDir()
	group, err := filepath.Rel(p.project.RootDir, dir)
	if err != nil {
		group = dir
	}
	group = filepath.ToSlash(group)

	scanned, err := src.ScanDir(ctx, dir)
	if errors.Is(err, fs.ErrNotExist) {
		p.opts.Logger.Debugf("[%s] no server utils directory at %s", p.runID, dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	local := make([]models.Import, 0, len(scanned))
	for _, imp := range scanned {
		imp.From = group
		local = append(local, imp)
	}

	p.opts.Logger.Debugf("[%s] utilsDir %s, relativeDir %s", p.runID, dir, group)
	p.opts.Logger.Dump("serverImports", local)
	return local, nil
}

// Extend adds the composables group to table. It may only follow Collect.
func (p *Pipeline) Extend(ctx context.Context, table models.GroupTable, composables []models.Import) (models.GroupTable, error) {
	if err := p.advance(PhaseExtended, PhaseCollected); err != nil {
		return table, err
	}
	if err := ctx.Err(); err != nil {
		return table, err
	}
	if !p.WantsComposables() {
		p.opts.Logger.Debugf("[%s] composables excluded", p.runID)
		return table, nil
	}
	return p.collector.Extend(table, composables), nil
}

// Finalize renders table, resolves the destination and registers the
// artifact with the sink. Rendering errors abort the run.
func (p *Pipeline) Finalize(ctx context.Context, table models.GroupTable) (models.Paths, error) {
	if err := p.advance(PhaseFinalized, PhaseCollected, PhaseExtended); err != nil {
		return models.Paths{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Paths{}, err
	}

	paths := ResolvePaths(p.project, p.settings, p.opts.ModulePath, p.opts.WorkingDir)

	contents, err := Render(table, p.settings, paths.ModulePath)
	if err != nil {
		return models.Paths{}, fmt.Errorf("failed to render %s: %w", paths.Filename, err)
	}

	if p.opts.Sink != nil {
		p.opts.Sink.AddTemplate(emit.Template{
			Filename:    paths.Filename,
			GetContents: func() (string, error) { return contents, nil },
			Dst:         paths.ExplicitDestination,
		})
	}

	p.opts.Logger.Debugf("[%s] rendered %d bytes for %s", p.runID, len(contents), paths.Destination())
	p.opts.Logger.Success(fmt.Sprintf("ESLint globals file generated at %s", paths.DisplayPath))
	return paths, nil
}

func (p *Pipeline) advance(to Phase, from ...Phase) error {
	for _, f := range from {
		if p.phase == f {
			p.phase = to
			return nil
		}
	}
	return fmt.Errorf("%w: cannot enter %s after %s", ErrPhaseOrder, to, p.phase)
}
