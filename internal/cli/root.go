// Package cli implements the command-line interface for cubekit.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath  string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubekit",
	Short: "Rubik's Cube state engine",
	Long: `cubekit - A CLI for manipulating, validating and sharing Rubik's Cube states.

Apply move sequences in standard notation, scramble and inspect cubes,
save named states to a local database, and exchange checksummed shareable
configurations with other cubekit users.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubekit/cubekit.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// openDB opens the configured (or default) database and applies migrations.
// Precedence: --db flag, CUBEKIT_DB, then the default path.
func openDB() (*storage.DB, error) {
	path := dbPath
	if path == "" {
		path = os.Getenv("CUBEKIT_DB")
	}

	var (
		db  *storage.DB
		err error
	)
	if path != "" {
		db, err = storage.Open(path)
	} else {
		db, err = storage.OpenDefault()
	}
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
