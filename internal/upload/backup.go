package upload

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/osutil"
)

// WriteBackup saves the payload in dir under its own filename and returns
// the path written. Only the base name of the payload filename is used.
func WriteBackup(dir string, p models.Payload) (string, error) {
	path := filepath.Join(dir, filepath.Base(p.Filename))

	if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
		return "", errWriteBackup.Fmt(path).Wrap(err)
	}

	err := os.WriteFile(path, []byte(p.CSVContent), osutil.FilePermission)
	if err != nil {
		return "", errWriteBackup.Fmt(path).Wrap(err)
	}

	return path, nil
}

// ListBackups returns the backup files in dir in natural order. A missing
// directory has no backups.
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	slices.SortFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	return files, nil
}
