package bucket

import (
	"fmt"
	"math"
)

// Definition is a named target aspect ratio used as a normalization target.
// It is a value object: construct it once, never modify it.
type Definition struct {
	Name   string
	Width  int
	Height int
}

// New builds a Definition. Non-positive dimensions are a programming error
// and panic rather than returning a runtime error.
func New(name string, width, height int) Definition {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("bucket %q: dimensions must be positive, got %dx%d", name, width, height))
	}
	return Definition{Name: name, Width: width, Height: height}
}

// Ratio returns width/height as a float.
func (d Definition) Ratio() float64 {
	return float64(d.Width) / float64(d.Height)
}

// LogRatio returns ln(width/height). Distances between log-ratios are
// symmetric for reciprocal ratios (2:1 and 1:2 are equally far from 1:1).
func (d Definition) LogRatio() float64 {
	return math.Log(d.Ratio())
}

func (d Definition) String() string {
	return fmt.Sprintf("%s (%d:%d)", d.Name, d.Width, d.Height)
}

// Catalog is an ordered sequence of bucket definitions. Order matters:
// earlier entries win ties during bucket selection.
type Catalog []Definition

// DefaultCatalog returns the built-in aspect-ratio targets.
func DefaultCatalog() Catalog {
	return Catalog{
		New("16:9", 16, 9),
		New("9:16", 9, 16),
		New("1:1", 1, 1),
		New("4:3", 4, 3),
		New("3:4", 3, 4),
		New("5:4", 5, 4),
		New("4:5", 4, 5),
	}
}

// Select returns the subset of the catalog matching the given names,
// preserving catalog order. Unknown names produce an error so a typo in a
// flag does not silently shrink the candidate set.
func (c Catalog) Select(names ...string) (Catalog, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var subset Catalog
	for _, d := range c {
		if wanted[d.Name] {
			subset = append(subset, d)
			delete(wanted, d.Name)
		}
	}
	for n := range wanted {
		return nil, fmt.Errorf("unknown bucket %q", n)
	}
	return subset, nil
}

// Names returns the bucket names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, d := range c {
		names[i] = d.Name
	}
	return names
}
