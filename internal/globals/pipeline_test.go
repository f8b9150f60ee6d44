package globals

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/harrison/eslint-globals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(settings models.Settings, resolver *countingResolver) (*Pipeline, *captureSink, *recordingLogger) {
	sink := &captureSink{}
	log := &recordingLogger{}
	root := filepath.FromSlash("/work/site")
	opts := Options{Sink: sink, Logger: log, ModulePath: "eslint-globals", WorkingDir: root}
	if resolver != nil {
		opts.Resolver = resolver
	}
	return NewPipeline(settings, testProject(root), opts), sink, log
}

func TestPipeline_EndToEnd(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) {
		s.Flat = true
		s.OutputFormat = models.FormatESM
		s.Exclude = []string{"vue"}
		s.Custom = []string{"myGlobal"}
	})
	p, sink, log := newTestPipeline(settings, nil)

	src := &staticSource{imports: []models.Import{
		{Name: "ref", From: "vue"},
		{Name: "computed", From: "vue"},
	}}

	ctx := context.Background()
	table, err := p.Collect(ctx, src)
	require.NoError(t, err)

	table, err = p.Extend(ctx, table, []models.Import{{Name: "useTestMe", From: "composables/useTestMe.ts"}})
	require.NoError(t, err)

	paths, err := p.Finalize(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, PhaseFinalized, p.Phase())

	require.Len(t, sink.templates, 1)
	tpl := sink.templates[0]
	assert.Equal(t, ".eslint.globals.mjs", tpl.Filename)
	assert.Empty(t, tpl.Dst)

	out, err := tpl.GetContents()
	require.NoError(t, err)
	assert.Contains(t, out, "name: 'kswedberg/nuxt-globals'")
	assert.Contains(t, out, "$fetch: 'readonly'")
	assert.Contains(t, out, "myGlobal: 'readonly'")
	assert.Contains(t, out, "useTestMe: 'readonly'")
	assert.NotContains(t, out, "ref: 'readonly'")
	assert.NotContains(t, out, "computed: 'readonly'")

	require.Len(t, log.success, 1)
	assert.Equal(t, fmt.Sprintf("ESLint globals file generated at %s", paths.DisplayPath), log.success[0])
}

func TestPipeline_ServerUtils(t *testing.T) {
	utilsDir := filepath.Join(filepath.FromSlash("/work/site"), "server", "utils")

	t.Run("scanned into a directory group", func(t *testing.T) {
		p, _, _ := newTestPipeline(models.DefaultSettings(), nil)
		src := &staticSource{scanned: map[string][]models.Import{
			utilsDir: {{Name: "testServerUtil", From: filepath.Join(utilsDir, "testServerUtil.ts")}},
		}}

		table, err := p.Collect(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, []string{"testServerUtil"}, table.Names("server/utils"))
	})

	t.Run("excluded server-utils is never scanned", func(t *testing.T) {
		settings := settingsWith(func(s *models.Settings) { s.Exclude = []string{"server-utils"} })
		p, _, _ := newTestPipeline(settings, nil)
		src := &staticSource{}

		_, err := p.Collect(context.Background(), src)
		require.NoError(t, err)
		assert.Empty(t, src.scanCalls)
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		p, _, _ := newTestPipeline(models.DefaultSettings(), nil)
		src := &staticSource{scanErr: fmt.Errorf("failed to access directory: %w", fs.ErrNotExist)}

		table, err := p.Collect(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, []string{GlobalGroup}, table.Groups())
	})

	t.Run("other scan failures abort", func(t *testing.T) {
		p, _, _ := newTestPipeline(models.DefaultSettings(), nil)
		src := &staticSource{scanErr: errors.New("permission denied")}

		_, err := p.Collect(context.Background(), src)
		assert.ErrorContains(t, err, "permission denied")
	})
}

func TestPipeline_ComposablesExcluded(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) { s.Exclude = []string{"composables"} })
	p, sink, _ := newTestPipeline(settings, nil)
	assert.False(t, p.WantsComposables())

	ctx := context.Background()
	table, err := p.Collect(ctx, &staticSource{imports: []models.Import{{Name: "useState", From: "#app/composables/state"}}})
	require.NoError(t, err)
	table, err = p.Extend(ctx, table, []models.Import{{Name: "useTestMe", From: "composables/useTestMe.ts"}})
	require.NoError(t, err)
	_, err = p.Finalize(ctx, table)
	require.NoError(t, err)

	out, err := sink.templates[0].GetContents()
	require.NoError(t, err)
	assert.Contains(t, out, "useState: 'readonly'")
	assert.NotContains(t, out, "useTestMe")
}

func TestPipeline_PhaseOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("extend before collect", func(t *testing.T) {
		p, _, _ := newTestPipeline(models.DefaultSettings(), nil)
		_, err := p.Extend(ctx, models.NewGroupTable(), nil)
		assert.ErrorIs(t, err, ErrPhaseOrder)
	})

	t.Run("finalize before collect", func(t *testing.T) {
		p, _, _ := newTestPipeline(models.DefaultSettings(), nil)
		_, err := p.Finalize(ctx, models.NewGroupTable())
		assert.ErrorIs(t, err, ErrPhaseOrder)
	})

	t.Run("finalize without extend", func(t *testing.T) {
		p, sink, _ := newTestPipeline(models.DefaultSettings(), nil)
		table, err := p.Collect(ctx, &staticSource{})
		require.NoError(t, err)
		_, err = p.Finalize(ctx, table)
		require.NoError(t, err)
		assert.Len(t, sink.templates, 1)
	})

	t.Run("no phase runs twice", func(t *testing.T) {
		p, _, _ := newTestPipeline(models.DefaultSettings(), nil)
		table, err := p.Collect(ctx, &staticSource{})
		require.NoError(t, err)
		_, err = p.Collect(ctx, &staticSource{})
		assert.ErrorIs(t, err, ErrPhaseOrder)

		_, err = p.Finalize(ctx, table)
		require.NoError(t, err)
		_, err = p.Extend(ctx, table, nil)
		assert.ErrorIs(t, err, ErrPhaseOrder)
		_, err = p.Finalize(ctx, table)
		assert.ErrorIs(t, err, ErrPhaseOrder)
	})
}

func TestPipeline_InvalidCustomFailsFinalize(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) { s.Custom = []string{"not valid"} })
	p, sink, log := newTestPipeline(settings, nil)

	table, err := p.Collect(context.Background(), &staticSource{})
	require.NoError(t, err)
	_, err = p.Finalize(context.Background(), table)

	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.Empty(t, sink.templates)
	assert.Empty(t, log.success)
}

func TestPipeline_OutputDir(t *testing.T) {
	settings := settingsWith(func(s *models.Settings) {
		s.OutputDir = "gitignore"
		s.OutputFormat = models.FormatTS
	})
	p, sink, _ := newTestPipeline(settings, nil)

	table, err := p.Collect(context.Background(), &staticSource{})
	require.NoError(t, err)
	paths, err := p.Finalize(context.Background(), table)
	require.NoError(t, err)

	want := filepath.Join(filepath.FromSlash("/work/site"), "gitignore", ".eslint.globals.ts")
	assert.Equal(t, want, paths.Destination())
	assert.Equal(t, want, sink.templates[0].Dst)
}

func TestPipeline_NilLogger(t *testing.T) {
	p := NewPipeline(models.DefaultSettings(), testProject(t.TempDir()), Options{})
	table, err := p.Collect(context.Background(), &staticSource{})
	require.NoError(t, err)
	_, err = p.Finalize(context.Background(), table)
	assert.NoError(t, err)
}
