package downloader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// RemovePartial deletes the temporary files interrupted downloads left under root
// and returns their paths. Finished files are never touched.
func RemovePartial(fs afero.Fs, root, suffix string) ([]string, error) {
	var removed []string

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), suffix) {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			return err
		}
		removed = append(removed, filepath.Clean(path))
		return nil
	})

	return removed, err
}
