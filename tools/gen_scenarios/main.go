// Package main generates deterministic benchmark scenario suites.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aeroinspect/tourplan/internal/config"
)

// suiteEntry is one point in the benchmark sweep.
type suiteEntry struct {
	viewpoints int
	robots     int
	walls      int
	area       float64
}

var suite = []suiteEntry{
	{viewpoints: 8, robots: 1, walls: 2, area: 15},
	{viewpoints: 12, robots: 2, walls: 3, area: 20},
	{viewpoints: 20, robots: 2, walls: 4, area: 25},
	{viewpoints: 30, robots: 3, walls: 5, area: 30},
	{viewpoints: 50, robots: 4, walls: 6, area: 40},
}

func main() {
	outputDir := flag.String("output", "scenarios", "output directory")
	seeds := flag.Int("seeds", 3, "seeds per suite entry")
	baseSeed := flag.Int64("base-seed", 42, "first seed value")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	count := 0
	for _, entry := range suite {
		for s := 0; s < *seeds; s++ {
			p := config.GenerateParams{
				Seed:          *baseSeed + int64(s),
				NumViewpoints: entry.viewpoints,
				NumRobots:     entry.robots,
				AreaSize:      entry.area,
				MinHeight:     0.5,
				MaxHeight:     6,
				NumWalls:      entry.walls,
			}

			scenario := config.Generate(p)
			path := filepath.Join(*outputDir, scenario.Name+".yaml")
			if err := config.Save(path, scenario); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(1)
			}
			count++
		}
	}

	fmt.Printf("Generated %d scenarios in %s\n", count, *outputDir)
}
