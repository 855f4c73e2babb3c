// cmd/donorpipe/report.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/config"
	"github.com/advancementlab/donorpipe/pkg/loader"
	"github.com/advancementlab/donorpipe/pkg/pipeline"
	"github.com/advancementlab/donorpipe/pkg/render"
)

func newReportCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var (
		input     string
		endPeriod string
		group     string
		xlsxPath  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build contact-report summaries for a group and period",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager(cfg, logger)
			if err != nil {
				return err
			}

			l, err := loader.NewLoader(logger)
			if err != nil {
				return err
			}
			contacts, err := l.LoadFile(input)
			if err != nil {
				return err
			}

			parsed, failures, err := manager.PrepareReports(contacts)
			if err != nil {
				return err
			}
			defer manager.Metrics().Finish()

			if len(failures) > 0 {
				logger.Warn("Some report dates could not be parsed",
					zap.Int("count", len(failures)))
				for _, f := range failures {
					logger.Debug("Unparseable date",
						zap.Int("row", f.RowIndex),
						zap.String("input", f.Input))
				}
			}

			job := pipeline.NewReportJob(endPeriod, group)
			results, err := manager.RunReports(cmd.Context(), parsed, []pipeline.ReportJob{job})
			if err != nil {
				return err
			}
			result := results[0]
			if !result.Success() {
				return result.Err
			}

			fmt.Fprintf(os.Stdout, "Contact reports for %s through %s\n\n", group, endPeriod)
			render.WriteCrossTab(os.Stdout, result.Summary)
			fmt.Fprintln(os.Stdout)
			render.WriteReachAndOutcomes(os.Stdout, result.Outcomes)
			fmt.Fprintln(os.Stdout)
			render.WriteCumulativeActivity(os.Stdout, result.Activity)
			fmt.Fprintf(os.Stdout, "\nAverage reports per staff (all departments): %.2f\n", result.AverageReports)

			if xlsxPath != "" {
				wb := render.NewWorkbook()
				defer wb.Close()
				if err := wb.AddCrossTab(result.Summary); err != nil {
					return err
				}
				if err := wb.AddReachAndOutcomes(result.Outcomes); err != nil {
					return err
				}
				if err := wb.AddCumulativeActivity(result.Activity); err != nil {
					return err
				}
				if err := wb.SaveAs(xlsxPath); err != nil {
					return err
				}
				logger.Info("Wrote workbook", zap.String("path", xlsxPath))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "contact_reports.csv", "Contact-report dataset")
	cmd.Flags().StringVar(&endPeriod, "end-period", cfg.EndPeriod, "Cutoff month label")
	cmd.Flags().StringVar(&group, "group", cfg.Group, "Department to report on")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the summaries to an xlsx workbook")

	return cmd
}
