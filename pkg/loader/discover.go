package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the header suffixes picked up from directories.
var DefaultExtensions = []string{".h", ".hh", ".hpp", ".hxx"}

// DefaultIgnoreDirs are common directories to skip during traversal.
var DefaultIgnoreDirs = []string{".git", "build", "dist", "vendor", "node_modules"}

// WalkOptions configures directory traversal behavior.
type WalkOptions struct {
	Extensions    []string // File suffixes to keep (default: DefaultExtensions)
	IgnoreDirs    []string // Directory names to skip (default: DefaultIgnoreDirs)
	IncludeHidden bool     // Include hidden files/dirs (default: false)
}

// Discover expands paths into the header files to load. A file argument is
// kept as given whatever its extension. A directory expands to the matching
// files beneath it in lexical order. Argument order is preserved and a file
// reached twice is listed once.
func Discover(paths []string, opts WalkOptions) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := walkHeaders(path, opts)
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

func walkHeaders(root string, opts WalkOptions) ([]string, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ignoreDirs := opts.IgnoreDirs
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden files/directories unless explicitly included
		if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && contains(ignoreDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if hasExtension(d.Name(), exts) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
