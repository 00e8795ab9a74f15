package output

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/ritzau/graph-explorer/pkg/explorer"
	"github.com/ritzau/graph-explorer/pkg/render"
)

// PrintSummary prints a nicely formatted scene report with colors, including
// the console rendering of the legend color maps.
func PrintSummary(scene *explorer.Scene, outputPath string) {
	// Color definitions
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	// Header
	bold.Println("Graph Explorer - Scene Report")
	bold.Println("=============================")
	fmt.Printf("Records: %d\n", scene.Stats.Records)
	fmt.Printf("Nodes: %d\n", scene.Stats.Nodes)
	fmt.Printf("Relationships: %d\n", scene.Stats.Relationships)
	fmt.Printf("Components: %d\n", scene.Stats.Components)
	fmt.Printf("Duration: %s\n", scene.Stats.Duration.Round(time.Millisecond))
	fmt.Println()

	// Legends, ordered the same way colors were assigned
	cyan.Println("NODE TYPES:")
	printLegend(scene.Graph.NodeTypes, scene.NodeColors())
	fmt.Println()

	cyan.Println("RELATIONSHIP TYPES:")
	printLegend(scene.Graph.RelationshipTypes, scene.RelationshipColors())
	fmt.Println()

	green.Printf("Wrote %s\n", outputPath)
}

// printLegend lists types by descending frequency with their assigned color
// as a true-color swatch.
func printLegend(freq map[string]int, colors render.ColorMap) {
	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if freq[names[i]] != freq[names[j]] {
			return freq[names[i]] > freq[names[j]]
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		c := colors[name]
		swatch := color.RGB(int(c.R), int(c.G), int(c.B))
		swatch.Print("  ■ ")
		display := name
		if display == "" {
			display = "(unlabeled)"
		}
		fmt.Printf("%-24s %d\n", display, freq[name])
	}
}
