package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/siaga/internal/model"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, artifact format and installed model",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "siaga %s (model format %s)\n", version, model.FormatVersion)

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := model.Load(cfg.Model.Path)
		if err != nil {
			fmt.Fprintf(out, "model: none usable at %s\n", cfg.Model.Path)
			return nil
		}
		fmt.Fprintf(out, "model: %s, %d features, threshold %v\n", b.Name(), len(b.Features), b.Threshold)
		return nil
	},
}
