package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retail-labels/labelgen/internal/pngbatch"
)

func newPNGsCmd() *cobra.Command {
	var file string
	var dir string

	cmd := &cobra.Command{
		Use:   "pngs [codes...]",
		Short: "Write one PNG per barcode",
		Long: `Writes <code>.png for every code into an output directory, with a
transparent background and no human readable digits.

Codes are taken from the arguments and from --file (one per line).`,
		Example: `  labelgen pngs 4006381333931 3607186681381
  labelgen pngs --file codes.txt --dir out/pngs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := append([]string{}, args...)
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open code file: %w", err)
				}
				fromFile, err := pngbatch.ReadCodes(f)
				f.Close()
				if err != nil {
					return err
				}
				codes = append(codes, fromFile...)
			}
			if len(codes) == 0 {
				return fmt.Errorf("no codes given")
			}

			batch := pngbatch.New(dir)
			bar := newProgressBar(cmd.ErrOrStderr(), len(codes), "Writing PNGs")
			batch.OnCode = func(code string, err error) {
				_ = bar.Add(1)
			}

			res, err := batch.Run(cmd.Context(), codes)
			_ = bar.Finish()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nPNG batch complete!\n")
			fmt.Fprintf(out, "  Written: %d\n", len(res.Written))
			fmt.Fprintf(out, "  Skipped (blank or duplicate): %d\n", res.Skipped)
			fmt.Fprintf(out, "  Errors: %d\n", res.Errors)
			fmt.Fprintf(out, "  Output location: %s\n", batch.Dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File with one code per line")
	cmd.Flags().StringVarP(&dir, "dir", "d", pngbatch.DefaultDir, "Output directory")

	return cmd
}
