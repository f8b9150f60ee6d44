package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for eslint-globals
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eslint-globals",
		Short: "Generate an ESLint globals file from Nuxt auto-imports",
		Long: `eslint-globals collects every identifier a Nuxt project makes available
without an import statement (auto-imports, server utils, nitro and h3 helpers,
composables and custom names) and writes them as an ESLint globals file.

The file can be spread into a flat config or extended from a legacy
.eslintrc so the linter stops reporting auto-imported names as undefined.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewGenerateCommand())

	return cmd
}
