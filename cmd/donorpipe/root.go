// cmd/donorpipe/root.go
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/config"
)

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "donorpipe",
		Short:         "Clean donor data and build contact-report summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newPrepareCmd(cfg, logger))
	cmd.AddCommand(newReportCmd(cfg, logger))

	return cmd
}
