package display

import (
	"github.com/harrison/dirloader/internal/fileutil"
)

// FindHiddenFiles returns the files matching pattern under root that are
// only reachable through a hidden path component.
// Paths are root-joined and in walk order.
func FindHiddenFiles(root, pattern string, recursive bool) ([]string, error) {
	result, err := fileutil.Glob(root, fileutil.GlobOptions{
		Pattern:       pattern,
		Recursive:     recursive,
		IncludeHidden: true,
	})
	if err != nil {
		return nil, err
	}

	hidden := make([]string, 0)
	for _, path := range result.Files {
		if !fileutil.IsVisible(relativeTo(root, path)) {
			hidden = append(hidden, path)
		}
	}
	return hidden, nil
}
