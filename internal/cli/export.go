package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
)

var exportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Export a saved state to a file",
	Long: `Export a saved state to a file in one of the supported formats:

  json     canonical JSON with move history (default)
  compact  single-line compact string
  base64   base64-wrapped JSON
  csv      one row per sticker
  text     human-readable report with an ASCII net`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

var exportFormat string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(cubekit.FormatJSON), "Export format (json, compact, base64, csv, text)")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := loadOrSolved(db, args[0], false)
	if err != nil {
		return err
	}

	if err := cubekit.ExportToFile(state, args[1], cubekit.Format(exportFormat)); err != nil {
		return err
	}
	fmt.Printf("Exported %q to %s (%s)\n", args[0], args[1], exportFormat)
	return nil
}
