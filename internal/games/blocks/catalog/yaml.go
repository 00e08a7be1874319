package catalog

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"gopkg.in/yaml.v3"
)

// YAMLCatalog is the on-disk catalog layout.
type YAMLCatalog struct {
	Shapes []YAMLShape `yaml:"shapes"`
}

// YAMLShape is one catalog entry. Cells come from either Pattern (ASCII art)
// or Offsets; when both are given Offsets wins.
type YAMLShape struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name,omitempty"`
	Points  int          `yaml:"points"`
	Rarity  int          `yaml:"rarity"`
	Tag     string       `yaml:"tag,omitempty"`
	Pattern string       `yaml:"pattern,omitempty"`
	Offsets []YAMLOffset `yaml:"offsets,omitempty"`
}

// YAMLOffset is a single cell offset.
type YAMLOffset struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseYAML parses and validates a catalog document.
func ParseYAML(data []byte) ([]*core.Shape, error) {
	var yc YAMLCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	specs := make([]core.ShapeSpec, 0, len(yc.Shapes))
	for _, ys := range yc.Shapes {
		offsets := make([]core.Coord, 0, len(ys.Offsets))
		for _, o := range ys.Offsets {
			offsets = append(offsets, core.C(o.X, o.Y))
		}
		if len(offsets) == 0 {
			offsets = ParsePattern(ys.Pattern)
		}
		specs = append(specs, core.ShapeSpec{
			ID:      ys.ID,
			Name:    ys.Name,
			Offsets: offsets,
			Points:  ys.Points,
			Rarity:  ys.Rarity,
			Tag:     ys.Tag,
		})
	}

	if err := Validate(specs); err != nil {
		return nil, err
	}

	shapes := make([]*core.Shape, len(specs))
	for i, spec := range specs {
		shapes[i] = core.NewShape(spec)
	}
	return shapes, nil
}

// ParsePattern converts ASCII art into offsets. '#', 'X' and 'x' mark tiles;
// any other rune is a gap. Row 0 is the first non-blank line.
func ParsePattern(pattern string) []core.Coord {
	lines := strings.Split(strings.Trim(pattern, "\n"), "\n")
	var out []core.Coord
	for y, line := range lines {
		for x, r := range []rune(strings.TrimRight(line, " \t\r")) {
			switch r {
			case '#', 'X', 'x':
				out = append(out, core.C(x, y))
			}
		}
	}
	return out
}

// FormatPattern renders a shape back into ASCII art, anchored at the
// minimum offset.
func FormatPattern(s *core.Shape) string {
	minC, maxC := s.Bounds()
	w, h := maxC.X-minC.X+1, maxC.Y-minC.Y+1

	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", w))
	}
	for _, o := range s.Offsets() {
		rows[o.Y-minC.Y][o.X-minC.X] = '#'
	}

	var sb strings.Builder
	for y, row := range rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(row)
	}
	return sb.String()
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
