package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor [name]",
	Short: "Audit a saved state and repair corruption",
	Long: `Run the structural corruption audit on a saved state. Recoverable
defects (individual invalid stickers) are repaired in place; structural
damage falls back to a solved cube. Without --fix the audit only reports.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDoctor,
}

var doctorFix bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair detected corruption")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	name := defaultStateName
	if len(args) == 1 {
		name = args[0]
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	// Read the raw payload rather than Load, which refuses corrupt states.
	repo := storage.NewStateRepository(db)
	row, err := repo.GetByName(name)
	if err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("no saved state named %q", name)
	}

	parsed := cubekit.Deserialize(row.Payload, cubekit.SerializeOptions{Format: cubekit.Format(row.Format)})
	if !parsed.Success {
		return fmt.Errorf("saved state %q cannot be parsed: %v", name, parsed.Errors)
	}

	sm := cubekit.NewStateManager()
	result := sm.DetectAndRecover(parsed.State)

	if !result.Corrupted {
		fmt.Println(solvedStyle.Render("OK") + " no corruption detected")
		fmt.Printf("Checksum: %d\n", sm.Checksum(parsed.State))
		return nil
	}

	fmt.Println(errorStyle.Render(fmt.Sprintf("%d defect(s) detected", len(result.Defects))))
	for _, d := range result.Defects {
		fmt.Printf("  [%s] %s\n", d.Code, d.Message)
	}

	if !result.Recovered {
		return fmt.Errorf("state is unrecoverable")
	}
	if !doctorFix {
		fmt.Println()
		fmt.Println("Run again with --fix to repair.")
		return nil
	}

	for _, step := range result.Steps {
		fmt.Println(statusStyle.Render("  " + step))
	}
	if _, err := repo.Save(name, result.State); err != nil {
		return err
	}
	fmt.Printf("Repaired %q\n", name)
	return nil
}
