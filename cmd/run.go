package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/siaga/internal/app"
	"github.com/abhisek/siaga/internal/logging"
)

// runApp builds dependencies and launches the TUI. Logs go to a file since
// the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	d, err := setup(cmd, logging.SinkFile)
	if err != nil {
		return err
	}
	defer func() { _ = d.closeLog() }()

	opts := app.Options{
		Config:   d.cfg,
		Catalogs: d.catalogs,
		Advisor:  newAdvisor(ctx, d),
		Logger:   d.logger,
	}
	if err := app.Run(ctx, opts); err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return nil
}
