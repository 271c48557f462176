package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirectoryScanner handles recursive directory scanning for Go files
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories resolves the provided directory patterns into the sorted
// list of directories containing Go source files. Patterns ending in
// "/..." scan recursively; plain paths name a single directory.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, rootDir := range rootDirs {
		if strings.HasSuffix(rootDir, "/...") {
			baseDir := strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			cleanPath, err := filepath.Abs(baseDir)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve path %s: %w", baseDir, err)
			}

			found, err := s.walkGoDirectories(cleanPath)
			if err != nil {
				return nil, err
			}
			for _, dir := range found {
				add(dir)
			}
			continue
		}

		cleanPath, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
		}
		hasGo, err := s.containsGoFiles(cleanPath)
		if err != nil {
			return nil, err
		}
		if hasGo {
			add(cleanPath)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// walkGoDirectories collects every directory under root that contains Go
// files, skipping hidden directories, testdata, and vendor trees
func (s *DirectoryScanner) walkGoDirectories(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
			return filepath.SkipDir
		}

		hasGo, err := s.containsGoFiles(path)
		if err != nil {
			return err
		}
		if hasGo {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return dirs, nil
}

// containsGoFiles reports whether the directory has at least one
// non-test, non-generated Go source file
func (s *DirectoryScanner) containsGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || name == GeneratedFileName {
			continue
		}
		return true, nil
	}
	return false, nil
}
