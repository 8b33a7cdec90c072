package cmd

import (
	"github.com/philipparndt/pmapview/internal/gui"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the viewer with a map list sidebar",
	Long:  "Open the fyne based viewer: a searchable map list next to the map view.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gui.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
