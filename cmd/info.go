package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <fileid|file>",
	Short: "Display information about a pathing map",
	Long:  "Show the trapezoid count, planes, bounds and walkable area of a pathing map file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	m, ref, err := loadMap(cfg, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Pathing Map Information")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintf(out, "File: %s\n", ref.Path)
	fmt.Fprintf(out, "File ID: %d\n\n", m.FileID)

	area := 0.0
	for _, t := range m.Trapezoids {
		area += t.Area()
	}
	fmt.Fprintln(out, "Map Statistics:")
	fmt.Fprintf(out, "  Trapezoids: %d\n", m.TrapezoidCount())
	fmt.Fprintf(out, "  Walkable Area: %.2f square units\n\n", area)

	counts := m.PlaneCounts()
	planes := make([]int, 0, len(counts))
	for p := range counts {
		planes = append(planes, p)
	}
	sort.Ints(planes)
	fmt.Fprintln(out, "Planes:")
	for _, p := range planes {
		fmt.Fprintf(out, "  %d: %d trapezoids\n", p, counts[p])
	}

	b := m.Bounds()
	if b.Empty() {
		return nil
	}
	fmt.Fprintln(out, "\nBounding Box:")
	fmt.Fprintf(out, "  Min: (%.2f, %.2f)\n", b.Min.X, b.Min.Y)
	fmt.Fprintf(out, "  Max: (%.2f, %.2f)\n", b.Max.X, b.Max.Y)
	fmt.Fprintf(out, "  Center: (%.2f, %.2f)\n", b.Center().X, b.Center().Y)
	fmt.Fprintf(out, "  Size: %.2f x %.2f\n", b.Size().X, b.Size().Y)
	return nil
}
