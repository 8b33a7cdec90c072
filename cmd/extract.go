package cmd

import (
	"fmt"
	"time"

	"github.com/philipparndt/pmapview/internal/logger"
	"github.com/philipparndt/pmapview/pkg/extractor"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <datfile>",
	Short: "Extract the pathing maps from the game data file",
	Long:  "Run the configured extractor (default: pmap -e <datfile>) and wait for it to finish.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	task := extractor.NewTask(cfg.Extractor.Command, cfg.Extractor.Args)
	task.SetDir(cfg.Extractor.Dir)

	fmt.Fprintln(cmd.OutOrStdout(), "Please wait for extraction...")
	if err := task.Start(args[0]); err != nil {
		return err
	}
	<-task.Done()

	fmt.Fprint(cmd.OutOrStdout(), task.Output())
	if task.Poll() != extractor.Succeeded {
		return task.Err()
	}
	logger.Info("extraction finished in %v", task.Elapsed())
	fmt.Fprintf(cmd.OutOrStdout(), "Extraction finished in %v\n", task.Elapsed().Round(time.Millisecond))
	return nil
}
