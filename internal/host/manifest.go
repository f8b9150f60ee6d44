// Package host is a minimal stand-in for the framework that drives the
// globals generator: it loads a project manifest, exposes the auto-import
// registry and runs the lifecycle hooks modules register on.
package host

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harrison/eslint-globals/internal/models"
)

const (
	// DefaultBuildDir is the build directory relative to the project root
	DefaultBuildDir = ".nuxt"
	// DefaultServerDir is the server directory relative to the project root
	DefaultServerDir = "server"
)

// DefaultComposableDirs are scanned for composables when the manifest does
// not list them
var DefaultComposableDirs = []string{"composables", "utils"}

// Manifest describes a project as the framework sees it at build time
type Manifest struct {
	RootDir        string                 `yaml:"rootDir" json:"rootDir"`
	BuildDir       string                 `yaml:"buildDir" json:"buildDir"`
	ServerDir      string                 `yaml:"serverDir" json:"serverDir"`
	Imports        []models.Import        `yaml:"imports" json:"imports"`
	Composables    []models.Import        `yaml:"composables" json:"composables"`
	ComposableDirs []string               `yaml:"composableDirs" json:"composableDirs"`
	RuntimeConfig  map[string]interface{} `yaml:"runtimeConfig" json:"runtimeConfig"`
}

// LoadManifest reads a YAML or JSON manifest. Relative directories resolve
// against the manifest's own directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest directory: %w", err)
	}
	m.RootDir = resolveDir(base, m.RootDir, ".")
	m.normalize()

	for i, imp := range m.Imports {
		if imp.Name == "" {
			return nil, fmt.Errorf("manifest %s: import %d has no name", path, i)
		}
	}
	return &m, nil
}

// DefaultManifest describes a project at root with no registry imports
func DefaultManifest(root string) (*Manifest, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	m := &Manifest{RootDir: abs}
	m.normalize()
	return m, nil
}

func (m *Manifest) normalize() {
	m.BuildDir = resolveDir(m.RootDir, m.BuildDir, DefaultBuildDir)
	m.ServerDir = resolveDir(m.RootDir, m.ServerDir, DefaultServerDir)
	if m.Composables == nil && len(m.ComposableDirs) == 0 {
		m.ComposableDirs = append([]string{}, DefaultComposableDirs...)
	}
	for i, dir := range m.ComposableDirs {
		m.ComposableDirs[i] = resolveDir(m.RootDir, dir, dir)
	}
}

// Project returns the project directories
func (m *Manifest) Project() models.Project {
	return models.Project{
		RootDir:   m.RootDir,
		BuildDir:  m.BuildDir,
		ServerDir: m.ServerDir,
	}
}

// RuntimeOptions returns runtimeConfig[key] when it is an object
func (m *Manifest) RuntimeOptions(key string) (map[string]interface{}, bool) {
	v, ok := m.RuntimeConfig[key]
	if !ok || v == nil {
		return nil, false
	}
	opts, ok := v.(map[string]interface{})
	return opts, ok
}

func resolveDir(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}
