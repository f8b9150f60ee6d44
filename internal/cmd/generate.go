package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/eslint-globals/internal/config"
	"github.com/harrison/eslint-globals/internal/host"
	"github.com/harrison/eslint-globals/internal/logger"
	"github.com/harrison/eslint-globals/internal/models"
	"github.com/harrison/eslint-globals/internal/module"
)

// ModulePath is named in the banner of every generated file
const ModulePath = "github.com/harrison/eslint-globals"

// NewGenerateCommand creates and returns the generate subcommand
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the ESLint globals file for a project",
		Long: `Run the import collection, composables extension and rendering phases
for a project and write .eslint.globals.<ext> into its build directory
(or into --output-dir).

Options are read, lowest precedence first, from:
  - eslint-globals.{yaml,yml,json,toml} in the project root (or --config)
  - runtimeConfig.eslintGlobals in the manifest
  - NUXT_ESLINT_GLOBALS_* environment variables (a .env file is honoured)
  - command-line flags

Without --manifest the project root is scanned for composables and no
registry imports are reported.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().String("root", ".", "Project root directory")
	cmd.Flags().String("manifest", "", "Path to a project manifest (YAML or JSON)")
	cmd.Flags().String("config", "", "Path to an options file (default: eslint-globals.{yaml,yml,json,toml} in the root)")
	cmd.Flags().Bool("dry-run", false, "Print the generated file instead of writing it")
	cmd.Flags().StringSlice("custom", nil, "Extra global identifiers (comma separated)")
	cmd.Flags().StringSlice("exclude", nil, "Origin groups or substrings to exclude (comma separated)")
	cmd.Flags().Bool("flat", true, "Generate a flat config object instead of a legacy .eslintrc one")
	cmd.Flags().String("output-type", "", "Output format: cjs, esm, ts or json")
	cmd.Flags().String("output-dir", "", "Write into this directory (relative to the root) instead of the build directory")
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	rootFlag, _ := cmd.Flags().GetString("root")
	manifestPath, _ := cmd.Flags().GetString("manifest")
	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	flags, err := flagOverrides(cmd)
	if err != nil {
		return err
	}

	// Logs go to stderr when stdout carries the generated file
	logOut := cmd.OutOrStdout()
	if dryRun {
		logOut = cmd.ErrOrStderr()
	}

	manifest, err := loadManifest(manifestPath, rootFlag)
	if err != nil {
		return err
	}

	bootLog := newLogger(logOut, flags.Debug != nil && *flags.Debug)
	runtimeOpts, _ := manifest.RuntimeOptions(config.RuntimeConfigKey)
	settings, err := config.Resolve(config.Sources{
		RootDir:    manifest.RootDir,
		ConfigFile: configPath,
		Runtime:    runtimeOpts,
		Flags:      flags,
		Logger:     bootLog,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve options: %w", err)
	}

	log := newLogger(logOut, settings.Debug)
	log.Dump("settings", settings)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	nuxt := host.New(manifest, log)
	if dryRun {
		nuxt.DryRun = cmd.OutOrStdout()
	}
	module.Install(nuxt, settings, module.Options{
		ModulePath: ModulePath,
		WorkingDir: cwd,
		Logger:     log,
	})

	if _, err := nuxt.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to generate globals: %w", err)
	}
	return nil
}

func loadManifest(manifestPath, root string) (*host.Manifest, error) {
	if manifestPath == "" {
		return host.DefaultManifest(root)
	}
	return host.LoadManifest(manifestPath)
}

// flagOverrides converts explicitly set flags into config overrides
func flagOverrides(cmd *cobra.Command) (config.Overrides, error) {
	var o config.Overrides
	fs := cmd.Flags()

	if fs.Changed("custom") {
		custom, _ := fs.GetStringSlice("custom")
		o.SetCustom(custom)
	}
	if fs.Changed("exclude") {
		exclude, _ := fs.GetStringSlice("exclude")
		o.SetExclude(exclude)
	}
	if fs.Changed("flat") {
		flat, _ := fs.GetBool("flat")
		o.Flat = &flat
	}
	if fs.Changed("output-type") {
		raw, _ := fs.GetString("output-type")
		format, err := models.ParseOutputFormat(raw)
		if err != nil {
			return config.Overrides{}, fmt.Errorf("invalid --output-type: %w", err)
		}
		o.OutputFormat = &format
	}
	if fs.Changed("output-dir") {
		dir, _ := fs.GetString("output-dir")
		o.OutputDir = &dir
	}
	if fs.Changed("debug") {
		debug, _ := fs.GetBool("debug")
		o.Debug = &debug
	}
	return o, nil
}

func newLogger(w io.Writer, debug bool) *logger.ConsoleLogger {
	if debug {
		return logger.NewConsoleLogger(w, "debug")
	}
	return logger.NewConsoleLogger(w, "info")
}
