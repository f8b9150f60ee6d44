package models

import (
	"fmt"
	"strings"
)

// OutputFormat selects the module dialect of the generated globals file
type OutputFormat string

const (
	// FormatCJS renders `module.exports = {...}`
	FormatCJS OutputFormat = "cjs"
	// FormatESM renders `export default {...}` into a .mjs file
	FormatESM OutputFormat = "esm"
	// FormatTS renders `export default {...}` into a .ts file
	FormatTS OutputFormat = "ts"
	// FormatJSON renders a `{"globals": {...}}` document
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat converts a user supplied output type into an OutputFormat.
// "es" and "mjs" are accepted as aliases for esm.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cjs":
		return FormatCJS, nil
	case "esm", "es", "mjs":
		return FormatESM, nil
	case "ts":
		return FormatTS, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output type %q, must be one of: cjs, esm, ts, json", s)
	}
}

// Extension returns the file extension used for the format
func (f OutputFormat) Extension() string {
	if f == FormatESM {
		return "mjs"
	}
	return string(f)
}

// Filename returns the name of the generated file, e.g. ".eslint.globals.mjs"
func (f OutputFormat) Filename() string {
	return ".eslint.globals." + f.Extension()
}

// Settings is the resolved configuration for one pipeline run.
// Values are copied on construction; callers must not mutate the slices they passed in.
type Settings struct {
	Custom       []string     // Extra identifiers declared by the user
	Exclude      []string     // Origin-group names or substrings to suppress
	Flat         bool         // Flat config shape instead of legacy .eslintrc shape
	OutputFormat OutputFormat // Module dialect of the artifact
	OutputDir    string       // Optional directory (relative to the project root) overriding the build dir
	Debug        bool         // Verbose logging
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Custom:       []string{},
		Exclude:      []string{},
		Flat:         true,
		OutputFormat: FormatESM,
	}
}

// Clone returns a deep copy so the result shares no slices with s
func (s Settings) Clone() Settings {
	c := s
	c.Custom = append([]string{}, s.Custom...)
	c.Exclude = append([]string{}, s.Exclude...)
	return c
}
