package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hansbonini/nanitools/pkg/common"
)

// Locate returns the first .xlsx workbook in dir, in lexicographic order.
// Lock files left by spreadsheet editors are ignored.
func Locate(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", common.FormatError(common.ErrFailedToLocateWorkbook, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") || common.IsOfficeLockFile(name) {
			continue
		}
		candidates = append(candidates, name)
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no .xlsx file in %s", ErrWorkbookNotFound, dir)
	}
	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0]), nil
}
