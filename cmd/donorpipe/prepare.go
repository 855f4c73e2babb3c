// cmd/donorpipe/prepare.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/cleaner"
	"github.com/advancementlab/donorpipe/pkg/config"
	"github.com/advancementlab/donorpipe/pkg/loader"
	"github.com/advancementlab/donorpipe/pkg/model"
	"github.com/advancementlab/donorpipe/pkg/pipeline"
	"github.com/advancementlab/donorpipe/pkg/render"
	"github.com/advancementlab/donorpipe/pkg/report"
	"github.com/advancementlab/donorpipe/pkg/splitter"
	"github.com/advancementlab/donorpipe/pkg/transformer"
)

func newPrepareCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var (
		input    string
		outDir   string
		fraction float64
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Clean the donor dataset and write train/test partitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager(cfg, logger)
			if err != nil {
				return err
			}

			l, err := loader.NewLoader(logger)
			if err != nil {
				return err
			}
			donors, err := l.LoadFile(input)
			if err != nil {
				return err
			}

			result, err := manager.PrepareDonors(cmd.Context(), donors, fraction, seed)
			if err != nil {
				return err
			}
			defer manager.Metrics().Finish()

			if err := writeCSV(filepath.Join(outDir, "training.csv"), result.Training); err != nil {
				return err
			}
			if err := writeCSV(filepath.Join(outDir, "testing.csv"), result.Testing); err != nil {
				return err
			}

			logger.Info("Wrote partitions",
				zap.String("dir", outDir),
				zap.Int("trainingRows", result.Training.Len()),
				zap.Int("testingRows", result.Testing.Len()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "donors.csv", "Donor dataset to clean")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the partition files")
	cmd.Flags().Float64Var(&fraction, "fraction", cfg.Fraction, "Training fraction in (0,1)")
	cmd.Flags().Int64Var(&seed, "seed", cfg.Seed, "Seed for the reproducible split")

	return cmd
}

// newManager wires the pipeline components, attaching the Postgres
// audit sink when a DSN is configured
func newManager(cfg *config.Config, logger *zap.Logger) (*pipeline.Manager, error) {
	var opts []cleaner.Option
	if cfg.AuditDatabaseURL != "" {
		db, err := cleaner.OpenAuditDB(context.Background(), cfg.AuditDatabaseURL)
		if err != nil {
			return nil, err
		}
		sink, err := cleaner.NewPostgresAuditSink(db, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cleaner.WithAuditSink(sink))
	}

	dc, err := cleaner.NewDataCleaner("donors", logger, opts...)
	if err != nil {
		return nil, err
	}
	sp, err := splitter.NewSplitter(logger)
	if err != nil {
		return nil, err
	}
	tr, err := transformer.NewTransformer(logger)
	if err != nil {
		return nil, err
	}
	rp, err := report.NewReporter(logger)
	if err != nil {
		return nil, err
	}

	return pipeline.NewManager(dc, sp, tr, rp, logger)
}

func writeCSV(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := render.WriteTableCSV(f, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
