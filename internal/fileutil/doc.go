// Package fileutil walks source directories and returns the files the export
// scanner should read.
//
// ScanDirectory filters by extension (case-insensitive), skips hidden and
// excluded directories, drops files with ignored suffixes such as ".d.ts" or
// ".test.ts", and returns absolute paths in sorted order so repeated scans
// of the same tree produce identical results. Unreadable entries are
// collected in ScanResult.Errors instead of aborting the walk.
package fileutil
