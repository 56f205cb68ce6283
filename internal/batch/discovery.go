// Package batch expands command line arguments into the list of image
// files a run should process and summarizes run outcomes.
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MeKo-Tech/rasterkit/imgio"
)

// Discover expands args into image file paths. Plain file arguments pass
// through as given so that problems with individual files surface during
// processing rather than aborting the whole run up front. Directory
// arguments are walked and filtered to supported image formats. Include
// and exclude patterns match against base names, with exclusions taking
// precedence.
func Discover(args []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			if matchesPatterns(arg, includePatterns, excludePatterns) {
				files = append(files, arg)
			}
			continue
		}

		found, err := walkDirectory(arg, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	return files, nil
}

func walkDirectory(dir string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		if !imgio.IsSupported(path) {
			return nil
		}
		if matchesPatterns(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", dir, err)
	}

	return files, nil
}

// matchesPatterns reports whether the base name of path passes the
// include and exclude patterns. An empty include list admits everything.
func matchesPatterns(path string, includePatterns, excludePatterns []string) bool {
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}

	return false
}
