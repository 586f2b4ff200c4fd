package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves...>",
	Short: "Apply a move sequence to the working state",
	Long: `Apply a sequence of moves in standard notation to a saved state and
save the result back under the same name.

Moves use face letters U D L R F B with an optional ' (counterclockwise)
or 2 (half turn) suffix:

  cubekit apply "R U R' U'"
  cubekit apply --state practice F2 D'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var applyStateName string

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVar(&applyStateName, "state", defaultStateName, "Saved state to modify")
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := cubekit.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := loadOrSolved(db, applyStateName, applyStateName == defaultStateName)
	if err != nil {
		return err
	}

	next, err := state.ApplyMoves(moves...)
	if err != nil {
		return err
	}

	if _, err := storage.NewStateRepository(db).Save(applyStateName, next); err != nil {
		return err
	}

	fmt.Println(moveStyle.Render(cubekit.FormatMoves(moves)))
	fmt.Println()
	fmt.Print(RenderState(next))
	fmt.Println()
	fmt.Println(renderSummary(next))
	return nil
}
