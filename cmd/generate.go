package cmd

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/retail-labels/labelgen/internal/pipeline"
	"github.com/retail-labels/labelgen/internal/report"
)

func newGenerateCmd() *cobra.Command {
	var input string
	var output string
	var perPage int
	var skipInvalid bool
	var summaryPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Generate the label PDF from a record file",
		Long: `Reads a record file and writes one PDF with a label per record.

Labels are laid out in a grid, five per page by default. Records whose barcode
cannot be drawn are still printed, without barcode image, unless --skip-invalid
is given.`,
		Example: `  # Write barcodes.pdf from items.json
  labelgen generate --input items.json

  # Custom output, page size and a YAML run summary
  labelgen generate items.xlsx --output labels.pdf --per-page 4 --summary run.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" && len(args) == 1 {
				input = args[0]
			}
			if input == "" {
				return fmt.Errorf("an input file is required (--input or first argument)")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("per-page") {
				cfg.ItemsPerPage = perPage
			}

			var bar *progressbar.ProgressBar
			opts := pipeline.Options{
				Input:       input,
				Config:      cfg,
				SkipInvalid: skipInvalid,
				OnPage: func(index, total int) {
					if quiet {
						return
					}
					if bar == nil {
						bar = newProgressBar(cmd.ErrOrStderr(), total, "Composing pages")
					}
					_ = bar.Add(1)
				},
			}

			res, err := pipeline.Run(cmd.Context(), opts)
			if summaryPath != "" {
				if serr := report.Save(summaryPath, res.Summary(opts)); serr != nil {
					slog.Error("Failed to save run summary", "path", summaryPath, "err", serr)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s: %d labels on %d pages\n", res.Output, res.Records, max(res.Pages, 1))
			if res.RasterFailures > 0 {
				fmt.Fprintf(out, "  Labels without barcode: %d\n", res.RasterFailures)
			}
			if len(res.Skipped) > 0 {
				fmt.Fprintf(out, "  Skipped (invalid barcode): %d\n", len(res.Skipped))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Record file (.json, .jsonl, .csv, .tsv, .xlsx, .parquet)")
	cmd.Flags().StringVarP(&output, "output", "o", "barcodes.pdf", "Output PDF path")
	cmd.Flags().IntVar(&perPage, "per-page", 5, "Labels per page")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Drop records whose barcode fails the EAN-13 checksum")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this path")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")

	return cmd
}
