package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adepratama/receipt-extractor/constants"
)

type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// ScanDirectory walks root and returns the token payload files it contains,
// skipping hidden files and directories. Walk errors on individual entries
// are counted but do not abort the scan.
func ScanDirectory(root string) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil // continue walking
		}
		if IsHidden(path) && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, err
	}
	return paths, stats, nil
}

// AllowedExt checks if a file extension is in the allowed set.
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
