// Package catalog loads the shape definitions offered by the spawner.
// This package depends on core but core does not depend on catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

//go:embed defaults/shapes.yaml
var defaultShapesYAML []byte

// Catalog is a read-only set of shapes keyed by id.
type Catalog struct {
	shapes []*core.Shape
	byID   map[string]*core.Shape
	Source string // File or directory the shapes came from; "embedded" for the default set
}

// New builds a catalog from already constructed shapes.
func New(shapes []*core.Shape, source string) *Catalog {
	c := &Catalog{
		shapes: shapes,
		byID:   make(map[string]*core.Shape, len(shapes)),
		Source: source,
	}
	for _, s := range shapes {
		c.byID[s.ID()] = s
	}
	return c
}

// Default returns the embedded catalog.
func Default() *Catalog {
	shapes, err := ParseYAML(defaultShapesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded defaults are invalid: %v", err))
	}
	return New(shapes, "embedded")
}

// DefaultYAML returns the embedded catalog document.
func DefaultYAML() []byte {
	return defaultShapesYAML
}

// Load reads a catalog from path. A directory is scanned recursively and
// every YAML file in it is merged; an empty path yields the default set.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: cannot stat %s: %w", path, err)
	}
	if !info.IsDir() {
		shapes, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		return New(shapes, path), nil
	}

	var all []core.ShapeSpec
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(p))) {
			return nil
		}
		shapes, err := LoadFile(p)
		if err != nil {
			return err
		}
		for _, s := range shapes {
			all = append(all, specOf(s))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: walking directory %s: %w", path, err)
	}

	// Files are parsed independently, so duplicates across files are only
	// visible here.
	if err := Validate(all); err != nil {
		return nil, err
	}
	shapes := make([]*core.Shape, len(all))
	for i, spec := range all {
		shapes[i] = core.NewShape(spec)
	}
	slices.SortFunc(shapes, func(a, b *core.Shape) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return New(shapes, path), nil
}

// LoadFile parses a single catalog file.
func LoadFile(path string) ([]*core.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading file %s: %w", path, err)
	}
	shapes, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parsing file %s: %w", path, err)
	}
	return shapes, nil
}

// Shapes returns the shapes in catalog order.
func (c *Catalog) Shapes() []*core.Shape {
	return slices.Clone(c.shapes)
}

// ByID returns the shape with the given id.
func (c *Catalog) ByID(id string) (*core.Shape, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// IDs returns every shape id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.shapes))
	for i, s := range c.shapes {
		ids[i] = s.ID()
	}
	return ids
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Filter returns a catalog restricted to shapes no wider or taller than
// maxExtent, so small boards never offer shapes that can never fit.
func (c *Catalog) Filter(maxExtent int) *Catalog {
	var kept []*core.Shape
	for _, s := range c.shapes {
		if w, h := s.Extent(); w <= maxExtent && h <= maxExtent {
			kept = append(kept, s)
		}
	}
	return New(kept, c.Source)
}

func specOf(s *core.Shape) core.ShapeSpec {
	return core.ShapeSpec{
		ID:      s.ID(),
		Name:    s.Name(),
		Offsets: s.Offsets(),
		Points:  s.Points(),
		Rarity:  s.Rarity(),
		Tag:     s.Tag(),
	}
}

func isSupportedExtension(ext string) bool {
	return slices.Contains(FormatExtensions(), ext)
}
