package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a scrambled cube",
	Long: `Generate a random scramble, apply it to a fresh solved cube and save
the result. A fixed seed reproduces the same scramble.`,
	Args: cobra.NoArgs,
	RunE: runScramble,
}

var (
	scrambleMoves int
	scrambleSeed  int64
	scrambleState string
)

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleMoves, "moves", "n", cubekit.DefaultScrambleLength, "Number of scramble moves")
	scrambleCmd.Flags().Int64Var(&scrambleSeed, "seed", 0, "Random seed (0 = time-based)")
	scrambleCmd.Flags().StringVar(&scrambleState, "state", defaultStateName, "Name to save the scrambled state under")
}

func runScramble(cmd *cobra.Command, args []string) error {
	state, moves, err := cubekit.ScrambledState(scrambleMoves, scrambleSeed)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := storage.NewStateRepository(db).Save(scrambleState, state); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Scramble"))
	fmt.Println(moveStyle.Render(cubekit.FormatMoves(moves)))
	fmt.Println()
	fmt.Print(RenderState(state))
	return nil
}
