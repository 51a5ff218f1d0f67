package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/siaga/internal/logging"
	"github.com/abhisek/siaga/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inference API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, logging.SinkStderr)
		if err != nil {
			return err
		}
		defer func() { _ = d.closeLog() }()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			d.cfg.Server.Addr = addr
		}

		ctx := cmd.Context()
		svc, b, err := loadService(ctx, d)
		if err != nil {
			return err
		}

		d.logger.Info("starting inference API",
			zap.String("addr", d.cfg.Server.Addr),
			zap.String("model", b.Name()),
			zap.Bool("tailored_advice", svc.Advisor().Enabled()),
		)
		return server.New(svc, b, d.cfg.Server, d.logger).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
