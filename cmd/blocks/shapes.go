package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/catalog"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

var flagMaxExtent int

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Show the shape catalog",
	Long: `Print every shape in the catalog with its draw weight and pattern.

Without --catalog the built-in set is shown. A directory is read as one
catalog made of every ` + strings.Join(catalog.FormatExtensions(), ", ") + ` file inside it.

Examples:
  blocks shapes
  blocks shapes --max-extent 3
  blocks shapes --catalog ./shapes/
  blocks shapes --defaults > shapes.yaml`,
	Run: runShapes,
}

var flagShapesDefaults bool

func init() {
	shapesCmd.Flags().IntVar(&flagMaxExtent, "max-extent", 0, "Only show shapes at most this wide and tall (0 = all)")
	shapesCmd.Flags().BoolVar(&flagShapesDefaults, "defaults", false, "Print the built-in catalog YAML and exit")
}

func runShapes(_ *cobra.Command, _ []string) {
	if flagShapesDefaults {
		os.Stdout.Write(catalog.DefaultYAML())
		return
	}

	cat, err := catalog.Load(flagCatalog)
	if err != nil {
		newLogger().Error("cannot load catalog", "error", err)
		os.Exit(1)
	}
	if flagMaxExtent > 0 {
		cat = cat.Filter(flagMaxExtent)
	}

	shapes := cat.Shapes()
	total := 0
	for _, s := range shapes {
		total += core.Weight(s.Rarity())
	}

	fmt.Printf("Catalog: %s (%d shapes)\n\n", cat.Source, len(shapes))
	for _, s := range shapes {
		w, h := s.Extent()
		weight := core.Weight(s.Rarity())
		fmt.Printf("%s  %s\n", s.ID(), s.Name())
		fmt.Printf("  %dx%d, %d tiles, %d points, rarity %d, draw chance %.1f%%\n",
			w, h, s.Size(), s.Points(), s.Rarity(), 100*float64(weight)/float64(max(total, 1)))
		for _, line := range strings.Split(catalog.FormatPattern(s), "\n") {
			fmt.Printf("    %s\n", line)
		}
		fmt.Println()
	}
}
