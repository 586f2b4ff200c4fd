package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and working state information",
	Long:  `Display the database path, schema version, saved state count and a structural audit of the working state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println(titleStyle.Render("cubekit status"))
	fmt.Println()
	fmt.Printf("Database: %s\n", db.Path())

	if version, err := db.CurrentVersion(); err == nil {
		fmt.Printf("Schema version: %d\n", version)
	}

	repo := storage.NewStateRepository(db)
	states, err := repo.List(10000)
	if err != nil {
		return err
	}
	fmt.Printf("Saved states: %d\n", len(states))
	if len(states) > 0 {
		fmt.Printf("Last saved: %s (%s)\n", states[0].Name, states[0].CreatedAt.Format(time.RFC3339))
	}
	fmt.Println()

	state, err := loadOrSolved(db, defaultStateName, true)
	if err != nil {
		return err
	}

	report := cubekit.ValidateState(state)
	if report.Valid {
		fmt.Println("Working state: " + solvedStyle.Render("OK"))
	} else {
		fmt.Println("Working state: " + errorStyle.Render("CORRUPT"))
		for _, e := range report.Errors {
			fmt.Println("  " + errorStyle.Render(e))
		}
	}
	for _, w := range report.Warnings {
		fmt.Println("  " + statusStyle.Render("warning: "+w))
	}
	fmt.Println(renderSummary(state))
	return nil
}
