// Package config resolves the generator settings from defaults, an options
// file, the host's runtime config, the environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harrison/eslint-globals/internal/models"
)

const (
	// AppName is the application name
	AppName = "eslint-globals"
	// EnvPrefix prefixes every environment override, e.g. NUXT_ESLINT_GLOBALS_EXCLUDE
	EnvPrefix = "NUXT_ESLINT_GLOBALS"
	// RuntimeConfigKey is the key under the host's runtimeConfig holding module options
	RuntimeConfigKey = "eslintGlobals"
)

// ConfigFileNames are looked up in the project root, in order
var ConfigFileNames = []string{
	"eslint-globals.yaml",
	"eslint-globals.yml",
	"eslint-globals.json",
	"eslint-globals.toml",
}

// envKeys maps environment suffixes onto option keys
var envKeys = map[string]string{
	"CUSTOM":      "custom",
	"EXCLUDE":     "exclude",
	"FLAT":        "flat",
	"OUTPUT_TYPE": "outputType",
	"OUTPUT_DIR":  "outputDir",
	"DEBUG":       "debug",
}

// Sources lists every input to Resolve. Zero values mean "not provided".
type Sources struct {
	RootDir    string                 // Project root; options file and .env are looked up here
	ConfigFile string                 // Explicit options file; must exist when set
	Inline     map[string]interface{} // Options passed by the host's module registration
	Runtime    map[string]interface{} // runtimeConfig.eslintGlobals from the host
	Flags      Overrides              // Command-line overrides
	Logger     Logger
}

// Resolve merges every source over DefaultSettings. Later sources win:
// defaults, options file, inline options, runtime config, environment, flags.
func Resolve(src Sources) (models.Settings, error) {
	log := src.Logger
	if log == nil {
		log = nopLogger{}
	}

	settings := models.DefaultSettings()

	path, err := findConfigFile(src.RootDir, src.ConfigFile)
	if err != nil {
		return models.Settings{}, err
	}
	if path != "" {
		raw, err := LoadFile(path)
		if err != nil {
			return models.Settings{}, err
		}
		o, err := DecodeOverrides(raw, path, log)
		if err != nil {
			return models.Settings{}, err
		}
		log.Debugf("Loaded options from %s", path)
		settings = o.Apply(settings)
	}

	if len(src.Inline) > 0 {
		o, err := DecodeOverrides(src.Inline, "module options", log)
		if err != nil {
			return models.Settings{}, err
		}
		settings = o.Apply(settings)
	}

	if len(src.Runtime) > 0 {
		o, err := DecodeOverrides(src.Runtime, "runtimeConfig."+RuntimeConfigKey, log)
		if err != nil {
			return models.Settings{}, err
		}
		settings = o.Apply(settings)
	}

	env, err := LoadEnv(src.RootDir)
	if err != nil {
		return models.Settings{}, err
	}
	if len(env) > 0 {
		o, err := DecodeOverrides(env, "environment", log)
		if err != nil {
			return models.Settings{}, err
		}
		settings = o.Apply(settings)
	}

	return src.Flags.Apply(settings), nil
}

func findConfigFile(root, explicit string) (string, error) {
	if explicit != "" {
		if !filepath.IsAbs(explicit) && root != "" {
			explicit = filepath.Join(root, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicit, nil
	}
	if root == "" {
		return "", nil
	}
	for _, name := range ConfigFileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadFile parses an options file into an untyped map. The format follows
// the extension: .toml is TOML, anything else is YAML (which covers JSON).
func LoadFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	raw := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return raw, nil
}

// LoadEnv reads NUXT_ESLINT_GLOBALS_* overrides. A .env file in root is
// loaded first; variables already set in the process take precedence.
func LoadEnv(root string) (map[string]interface{}, error) {
	if root != "" {
		if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	raw := map[string]interface{}{}
	for suffix, key := range envKeys {
		if !v.IsSet(suffix) {
			continue
		}
		raw[key] = v.GetString(suffix)
	}
	return raw, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
