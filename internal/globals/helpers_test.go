package globals

import (
	"context"
	"fmt"

	"github.com/harrison/eslint-globals/internal/companion"
	"github.com/harrison/eslint-globals/internal/emit"
	"github.com/harrison/eslint-globals/internal/models"
)

// recordingLogger implements Logger for testing
type recordingLogger struct {
	debugs   []string
	warnings []string
	success  []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.debugs = append(l.debugs, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...interface{}) {}
func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Dump(label string, v interface{}) {}
func (l *recordingLogger) Success(message string)           { l.success = append(l.success, message) }

// staticSource implements ImportSource for testing
type staticSource struct {
	imports   []models.Import
	scanned   map[string][]models.Import
	scanErr   error
	scanCalls []string
}

func (s *staticSource) Imports(ctx context.Context) ([]models.Import, error) {
	return s.imports, nil
}

func (s *staticSource) ScanDir(ctx context.Context, dir string) ([]models.Import, error) {
	s.scanCalls = append(s.scanCalls, dir)
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.scanned[dir], nil
}

// captureSink implements TemplateSink for testing
type captureSink struct {
	templates []emit.Template
}

func (c *captureSink) AddTemplate(t emit.Template) {
	c.templates = append(c.templates, t)
}

// countingResolver records which libraries were resolved
type countingResolver struct {
	names map[string][]string
	err   error
	calls []string
}

func (r *countingResolver) Resolve(ctx context.Context, lib companion.Library) ([]string, error) {
	r.calls = append(r.calls, lib.Group)
	if r.err != nil {
		return nil, r.err
	}
	return r.names[lib.Group], nil
}

func settingsWith(mutate func(*models.Settings)) models.Settings {
	s := models.DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	return s
}
