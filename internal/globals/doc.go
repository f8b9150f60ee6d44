// Package globals builds the ESLint globals file from the identifiers a
// framework auto-imports.
//
// A run goes through three phases, each returning a new models.GroupTable:
//
//	Collect   built-in globals, host registry imports, server utils,
//	          companion libraries (nitro, h3) and custom names
//	Extend    the composables group, skipped entirely when excluded
//	Finalize  dedupe and render the table, resolve the destination and
//	          hand the artifact to the template sink
//
// Identifiers are deduplicated across groups in population order: the first
// group to report a name keeps it.
package globals
