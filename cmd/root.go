package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/retail-labels/labelgen/internal/config"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "labelgen",
		Short: "Render EAN-13 barcode labels into a printable PDF",
		Long: `Labelgen turns a list of garment records into a paginated PDF of retail labels.

Each label carries the style, color, season, size and price of one record along
with its EAN-13 barcode. Records can be read from JSON, JSONL, CSV, TSV, XLSX or
Parquet files.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")

	// Add subcommands
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newPNGsCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadConfig reads the file named by --config and applies the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}
