package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/retail-labels/labelgen/internal/ean"
	"github.com/retail-labels/labelgen/internal/ingest"
)

func newValidateCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate [input]",
		Short: "Check the EAN-13 checksum of every record",
		Long: `Loads a record file and prints the checksum status of each barcode.

The command fails when at least one barcode is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" && len(args) == 1 {
				input = args[0]
			}
			if input == "" {
				return fmt.Errorf("an input file is required (--input or first argument)")
			}

			records, err := ingest.LoadFile(cmd.Context(), input)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tBARCODE\tSTATUS\tSTYLE")
			invalid := 0
			for i, rec := range records {
				status := "valid"
				if !ean.Validate(rec.Barcode) {
					status = "invalid"
					invalid++
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, rec.Barcode, status, rec.StyleName)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d barcodes are invalid", invalid, len(records))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Record file")

	return cmd
}
