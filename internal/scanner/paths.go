package scanner

import (
	"path/filepath"
	"strings"
)

func topLevelOrIndex(dir, file string) bool {
	rel := relOrSelf(dir, file)
	if !strings.ContainsRune(rel, filepath.Separator) {
		return true
	}
	name := filepath.Base(rel)
	return strings.TrimSuffix(name, filepath.Ext(name)) == "index"
}

func relOrSelf(dir, file string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return file
	}
	rel, err := filepath.Rel(absDir, file)
	if err != nil {
		return file
	}
	return rel
}
