package batch

import (
	"fmt"
	"os"
	"strings"

	"bucketcrop/internal/imagecodec"
)

// thumbPrefix marks generated thumbnail files, which are never treated as
// batch inputs.
const thumbPrefix = "thumb-"

// ScanStats is the cheap pre-flight count for a source folder.
type ScanStats struct {
	TotalFiles int
	ImageFiles int
}

// Scan counts top-level files in dir and how many of them are eligible
// images. It never decodes anything. Traversal is deliberately
// non-recursive: a dataset version is one flat folder.
func Scan(dir string) (ScanStats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ScanStats{}, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var stats ScanStats
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stats.TotalFiles++
		if eligible(e.Name()) {
			stats.ImageFiles++
		}
	}
	return stats, nil
}

// eligible reports whether a filename is a batch input: a supported raster
// format that is not a generated thumbnail. Dotfiles are excluded too,
// which also keeps stale temp files from an interrupted run out of later
// runs.
func eligible(name string) bool {
	if strings.HasPrefix(name, thumbPrefix) || strings.HasPrefix(name, ".") {
		return false
	}
	return imagecodec.SupportedExtension(name)
}

// listEligible returns the eligible filenames in dir in directory order.
func listEligible(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !eligible(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
