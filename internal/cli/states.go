package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cube states",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved cube state",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var resetCmd = &cobra.Command{
	Use:   "reset [name]",
	Short: "Reset a saved state to a solved cube",
	Long: `Reset a saved state to a fresh solved cube. Corrupt saved states that
can no longer be loaded are replaced outright.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

var copyCmd = &cobra.Command{
	Use:   "copy <from> <to>",
	Short: "Copy a saved state under a new name",
	Args:  cobra.ExactArgs(2),
	RunE:  runCopy,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(copyCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	states, err := storage.NewStateRepository(db).List(100)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		fmt.Println("No saved states. Create one with 'cubekit scramble' or 'cubekit apply'.")
		return nil
	}

	fmt.Println(titleStyle.Render("Saved states"))
	fmt.Println()
	for _, s := range states {
		solved := ""
		if s.IsSolved {
			solved = "  " + solvedStyle.Render("solved")
		}
		fmt.Printf("  %-20s %3d moves  %s%s\n",
			s.Name, s.MoveCount, statusStyle.Render(s.CreatedAt.Format(time.RFC3339)), solved)
	}
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewStateRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", args[0])
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	name := defaultStateName
	if len(args) == 1 {
		name = args[0]
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := storage.NewStateRepository(db).Save(name, cubekit.NewSolvedState()); err != nil {
		return err
	}
	fmt.Printf("Reset %q to a solved cube\n", name)
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewStateRepository(db)
	state, err := repo.Load(args[0])
	if err != nil {
		return err
	}
	if _, err := repo.Save(args[1], state); err != nil {
		return err
	}
	fmt.Printf("Copied %q to %q\n", args[0], args[1])
	return nil
}
