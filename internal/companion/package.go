package companion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/eslint-globals/internal/scanner"
)

// maxReExportDepth bounds how far `export * from` chains are followed
const maxReExportDepth = 8

// Package resolves companion exports from the installed npm package: it
// locates node_modules/<pkg>/package.json from the project root upwards,
// picks the entry for the library's subpath (preferring type declarations)
// and collects value exports across relative `export * from` re-exports.
type Package struct {
	RootDir string
}

// NewPackage creates a Package resolver anchored at the project root
func NewPackage(rootDir string) *Package {
	return &Package{RootDir: rootDir}
}

type packageJSON struct {
	Types   string          `json:"types"`
	Typings string          `json:"typings"`
	Module  string          `json:"module"`
	Main    string          `json:"main"`
	Exports json.RawMessage `json:"exports"`
}

// Resolve implements Resolver
func (p *Package) Resolve(ctx context.Context, lib Library) ([]string, error) {
	pkgDir, err := p.findPackage(lib.Package)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("read %s package.json: %w", lib.Package, err)
	}
	var manifest packageJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse %s package.json: %w", lib.Package, err)
	}

	entry, err := manifest.entry(lib.Subpath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lib.Package, err)
	}

	c := &collector{seen: map[string]bool{}, visited: map[string]bool{}}
	if err := c.collect(ctx, filepath.Join(pkgDir, filepath.FromSlash(entry)), 0); err != nil {
		return nil, fmt.Errorf("%s: %w", lib.Package, err)
	}
	return c.names, nil
}

// findPackage walks up from RootDir looking for node_modules/<name>
func (p *Package) findPackage(name string) (string, error) {
	current, err := filepath.Abs(p.RootDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(current, "node_modules", filepath.FromSlash(name))
		if info, err := os.Stat(filepath.Join(candidate, "package.json")); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("package %s not found from %s: %w", name, p.RootDir, os.ErrNotExist)
		}
		current = parent
	}
}

// entry picks the file for subpath from the "exports" map, falling back to
// the legacy top-level fields for the package root.
func (m packageJSON) entry(subpath string) (string, error) {
	if subpath == "" {
		subpath = "."
	}

	if len(m.Exports) > 0 {
		var raw interface{}
		if err := json.Unmarshal(m.Exports, &raw); err != nil {
			return "", fmt.Errorf("invalid exports field: %w", err)
		}
		target := raw
		if obj, ok := raw.(map[string]interface{}); ok && hasSubpathKeys(obj) {
			target = obj[subpath]
		} else if subpath != "." {
			target = nil
		}
		if file := conditionTarget(target); file != "" {
			return file, nil
		}
	}

	if subpath == "." {
		for _, f := range []string{m.Types, m.Typings, m.Module, m.Main} {
			if f != "" {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("no entry for subpath %q", subpath)
}

func hasSubpathKeys(obj map[string]interface{}) bool {
	for k := range obj {
		if strings.HasPrefix(k, ".") {
			return true
		}
	}
	return false
}

// conditionTarget resolves a conditional export, preferring declarations
func conditionTarget(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]interface{}:
		for _, cond := range []string{"types", "import", "default", "node", "require"} {
			if file := conditionTarget(t[cond]); file != "" {
				return file
			}
		}
	case []interface{}:
		for _, item := range t {
			if file := conditionTarget(item); file != "" {
				return file
			}
		}
	}
	return ""
}

type collector struct {
	names   []string
	seen    map[string]bool
	visited map[string]bool
}

func (c *collector) collect(ctx context.Context, file string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth > maxReExportDepth || c.visited[file] {
		return nil
	}
	c.visited[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	ex := scanner.ParseExports(string(data))
	for _, n := range ex.Names {
		if !c.seen[n] {
			c.seen[n] = true
			c.names = append(c.names, n)
		}
	}

	for _, spec := range ex.ReExports {
		if !strings.HasPrefix(spec, ".") {
			continue
		}
		target, ok := resolveModule(filepath.Join(filepath.Dir(file), filepath.FromSlash(spec)))
		if !ok {
			continue
		}
		if err := c.collect(ctx, target, depth+1); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// resolveModule maps an extensionless specifier onto a file on disk
func resolveModule(base string) (string, bool) {
	candidates := []string{base}
	trimmed := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(base, ".mjs"), ".js"), ".cjs")
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts", ".ts", ".mts", ".mjs", ".js", ".cjs"} {
		candidates = append(candidates, trimmed+ext)
	}
	candidates = append(candidates, filepath.Join(base, "index.d.ts"), filepath.Join(base, "index.mjs"), filepath.Join(base, "index.js"))

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}
