package cmd

import (
	"fmt"
	"os"

	"github.com/philipparndt/pmapview/internal/app"
	"github.com/philipparndt/pmapview/internal/config"
	"github.com/philipparndt/pmapview/internal/logger"
	"github.com/philipparndt/pmapview/pkg/catalog"
	"github.com/philipparndt/pmapview/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pmapview [fileid|file]",
	Short: "Pathing map viewer",
	Long: `pmapview shows the pathing maps (trapezoid navigation meshes) extracted
from the game data. Drag to pan, scroll to zoom, Space toggles wireframe,
C toggles the range circles around the cursor and Home jumps to the spawn
point of the selected map.`,
	Version:           version.GetFullVersion(),
	Args:              cobra.MaximumNArgs(1),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.CloseLogger()
	},
	RunE: runViewer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultFile, "config file")
}

// setup loads the config and starts the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = c
	lc := cfg.LoggerConfig("pmapview")
	lc.Output = cmd.ErrOrStderr()
	logger.InitLogger(lc)
	logger.Debug("config loaded from %v", configFile)
	for _, key := range cfg.Unknown {
		logger.Warn("unknown config key %v in %v", key, configFile)
	}
	return nil
}

func runViewer(cmd *cobra.Command, args []string) error {
	opts := app.Options{Select: -1}
	if len(args) == 1 {
		ref, err := resolveMap(cfg, args[0])
		if err != nil {
			return err
		}
		opts.File = ref.Path
		if ref.IsID {
			if idx := catalogIndex(ref.FileID); idx >= 0 {
				opts.Select = idx
				opts.File = ""
			}
		}
	}
	return app.Run(cfg, opts)
}

// catalogIndex finds a file id in the map index, -1 if absent
func catalogIndex(fileID uint32) int {
	c, err := catalog.Load(cfg.Data.Catalog)
	if err != nil {
		return -1
	}
	return c.FindByFileID(fileID)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.CloseLogger()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
