package bucket

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk shape of a custom bucket catalog.
type catalogFile struct {
	Buckets []struct {
		Name   string `yaml:"name"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"buckets"`
}

// LoadCatalog reads a YAML catalog file. Unlike New, malformed entries are
// reported as errors because the file is user input, not caller code.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	if len(file.Buckets) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no buckets", path)
	}

	catalog := make(Catalog, 0, len(file.Buckets))
	for i, b := range file.Buckets {
		if b.Name == "" {
			return nil, fmt.Errorf("bucket %d: missing name", i)
		}
		if b.Width <= 0 || b.Height <= 0 {
			return nil, fmt.Errorf("bucket %q: dimensions must be positive, got %dx%d", b.Name, b.Width, b.Height)
		}
		catalog = append(catalog, Definition{Name: b.Name, Width: b.Width, Height: b.Height})
	}
	return catalog, nil
}
