package globals

import (
	"path/filepath"
	"strings"

	"github.com/harrison/eslint-globals/internal/models"
)

// appDir is stripped from the banner's module path so container builds
// (rooted at /app) do not leak their mount point into the artifact.
const appDir = "/app/"

// ResolvePaths computes where the artifact goes. By default it is placed in
// the build directory; a configured OutputDir replaces that location
// entirely. cwd anchors the user-facing display path. No filesystem access
// happens here.
func ResolvePaths(project models.Project, settings models.Settings, modulePath, cwd string) models.Paths {
	filename := settings.OutputFormat.Filename()
	full := filepath.Join(project.BuildDir, filename)

	paths := models.Paths{
		ModulePath:    strings.TrimPrefix(modulePath, appDir),
		OutputDirName: filepath.Base(project.BuildDir),
		FullPath:      full,
		DisplayPath:   displayPath(full, cwd),
		Filename:      filename,
	}

	if settings.OutputDir != "" {
		dst := settings.OutputDir
		if !filepath.IsAbs(dst) {
			dst = filepath.Join(project.RootDir, dst)
		}
		paths.ExplicitDestination = filepath.Join(dst, filename)
		paths.DisplayPath = paths.ExplicitDestination
		if !filepath.IsAbs(paths.ExplicitDestination) {
			paths.DisplayPath = displayPath(paths.ExplicitDestination, cwd)
		}
	}

	return paths
}

func displayPath(path, cwd string) string {
	if cwd == "" {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
