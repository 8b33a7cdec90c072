package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/philipparndt/pmapview/pkg/catalog"
	"github.com/spf13/cobra"
)

var catalogFilter string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the maps in the map index",
	Long:  "List the entries of the map index (mapinfo.csv). Lines that cannot be parsed are reported on stderr.",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFilter, "filter", "f", "", "only show maps whose name or id contains this text")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	c, err := catalog.Load(cfg.Data.Catalog)
	if err != nil {
		return err
	}
	for _, s := range c.Skipped {
		fmt.Fprintf(os.Stderr, "%s:%d: skipped: %s\n", cfg.Data.Catalog, s.Line, s.Reason)
	}

	c.Filter(catalogFilter)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE ID\tNAME\tSPAWN")
	for _, i := range c.VisibleIndices() {
		e := c.Entries[i]
		fmt.Fprintf(w, "%d\t%d\t%s\t%.1f, %.1f\n", e.ID, e.FileID, e.Name, e.Spawn.X, e.Spawn.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d maps\n", len(c.VisibleIndices()), c.Len())
	return nil
}
