package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

// defaultStateName is the working state commands operate on when no name is
// given.
const defaultStateName = "current"

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Display a saved cube state",
	Long: `Display a saved cube state as a colored unfolded net.

With no name the working state "current" is shown; a fresh solved cube is
shown if nothing has been saved yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	name := defaultStateName
	if len(args) == 1 {
		name = args[0]
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := loadOrSolved(db, name, len(args) == 0)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("cubekit: " + name))
	fmt.Println()
	fmt.Print(RenderState(state))
	fmt.Println()
	fmt.Println(renderSummary(state))
	if len(state.MoveHistory) > 0 {
		fmt.Println(statusStyle.Render("history: ") + moveStyle.Render(cubekit.FormatMoves(state.MoveHistory)))
	}
	return nil
}

// loadOrSolved loads a named state. When allowMissing is set a missing name
// falls back to a fresh solved cube instead of failing.
func loadOrSolved(db *storage.DB, name string, allowMissing bool) (cubekit.CubeState, error) {
	repo := storage.NewStateRepository(db)
	row, err := repo.GetByName(name)
	if err != nil {
		return cubekit.CubeState{}, err
	}
	if row == nil {
		if allowMissing {
			return cubekit.NewSolvedState(), nil
		}
		return cubekit.CubeState{}, fmt.Errorf("no saved state named %q (run 'cubekit list')", name)
	}
	return repo.Load(name)
}
