// Package fsutil provides file system helpers shared by the config loaders.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindFiles walks each given path and returns every file whose extension is
// one of the given extensions, deduplicated and in discovery order. A path
// naming a single file is matched against the same filter, and paths that do
// not exist are skipped rather than reported as errors.
func FindFiles(paths []string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension must be given")
	}

	matches := func(p string) bool {
		ext := filepath.Ext(p)
		for _, want := range extensions {
			if ext == want {
				return true
			}
		}
		return false
	}

	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if matches(path) {
				add(path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && matches(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return allFiles, nil
}
