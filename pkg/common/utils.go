package common

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// flagFolder case-folds flag cells so "f", "F" and their Unicode variants compare equal.
var flagFolder = cases.Fold()

// NormalizeCell trims surrounding whitespace from a spreadsheet cell value
func NormalizeCell(value string) string {
	return strings.TrimSpace(value)
}

// FoldFlag trims and case-folds a flag cell for comparison
func FoldFlag(value string) string {
	return flagFolder.String(strings.TrimSpace(value))
}

// BaseNameWithoutExt returns the file name of path without directory and extension
func BaseNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsOfficeLockFile reports whether name is a lock file left behind by an open spreadsheet editor
func IsOfficeLockFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), "~$")
}
