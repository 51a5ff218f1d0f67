package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/siaga/internal/artifact"
	"github.com/abhisek/siaga/internal/logging"
	"github.com/abhisek/siaga/internal/model"
)

var demoModelCmd = &cobra.Command{
	Use:   "demo-model",
	Short: "Install the bundled demo model at the configured model path",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.Model.Path

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists; use --force to replace it", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err := artifact.WriteAtomic(model.DemoArtifact(), path); err != nil {
			return fmt.Errorf("install demo model: %w", err)
		}
		b := model.DemoBundle()
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s (%d features) at %s\n", b.Name(), len(b.Features), path)
		return nil
	},
}

var installModelCmd = &cobra.Command{
	Use:   "install-model <url|path>",
	Short: "Fetch, verify and install a model artifact",
	Long: "Fetch a model artifact from a URL or local path, verify its checksum, check\n" +
		"that it loads and move it into the configured model path. A running form\n" +
		"waiting for a model opens as soon as the file is in place.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sum, _ := cmd.Flags().GetString("sha256")
		checksums, _ := cmd.Flags().GetString("checksums")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		d, err := setup(cmd, logging.SinkStderr)
		if err != nil {
			return err
		}
		defer func() { _ = d.closeLog() }()

		inst := artifact.New(artifact.WithTimeout(timeout), artifact.WithLogger(d.logger))
		b, err := inst.Install(cmd.Context(), artifact.Source{
			Location:     args[0],
			SHA256:       sum,
			ChecksumsURL: checksums,
		}, d.cfg.Model.Path, func(p artifact.Progress) {
			fmt.Fprintln(cmd.OutOrStdout(), p.Message)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s (%d features, threshold %v)\n", b.Name(), len(b.Features), b.Threshold)
		return nil
	},
}

func init() {
	demoModelCmd.Flags().Bool("force", false, "Replace an existing artifact")

	installModelCmd.Flags().String("sha256", "", "Expected SHA-256 of the downloaded file")
	installModelCmd.Flags().String("checksums", "", "URL of a sha256sum-style checksums file")
	installModelCmd.Flags().Duration("timeout", 2*time.Minute, "Timeout for each download")
}
