package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactively turn the cube",
	Long: `Open an interactive session on a saved state. Face keys apply
clockwise turns; hold shift for counterclockwise. The state is saved back
when you quit.

Keys:
  u d l r f b   turn a face clockwise
  U D L R F B   turn a face counterclockwise
  z / y         undo / redo
  s             scramble
  x             reset to solved
  q             save and quit`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	playStateName    string
	playTurnDuration time.Duration
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playStateName, "state", defaultStateName, "Saved state to play on")
	playCmd.Flags().DurationVar(&playTurnDuration, "turn-duration", 200*time.Millisecond, "Animation duration per turn")
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := loadOrSolved(db, playStateName, playStateName == defaultStateName)
	if err != nil {
		return err
	}

	model := newPlayModel(state, playTurnDuration)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("play session error: %w", err)
	}

	m, ok := final.(*playModel)
	if !ok {
		return nil
	}
	if _, err := storage.NewStateRepository(db).Save(playStateName, m.history.Current()); err != nil {
		return err
	}
	fmt.Printf("Saved state %q\n", playStateName)
	return nil
}

// Play model
type playModel struct {
	manager      *cubekit.StateManager
	history      *cubekit.HistoryManager
	animations   *cubekit.AnimationManager
	turnDuration time.Duration
	lastMove     string
	lastError    string
	quitting     bool
}

func newPlayModel(state cubekit.CubeState, turnDuration time.Duration) *playModel {
	return &playModel{
		manager:      cubekit.NewStateManager(),
		history:      cubekit.NewHistoryManager(state),
		animations:   cubekit.NewAnimationManager(),
		turnDuration: turnDuration,
	}
}

type playTickMsg time.Time

func (m *playModel) Init() tea.Cmd {
	return nil
}

// tick keeps the view refreshing while an animation runs.
func (m *playModel) tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "z":
			m.lastError = ""
			if move, err := m.history.Undo(); err != nil {
				m.lastError = err.Error()
			} else if move != nil {
				m.lastMove = "undo " + move.Notation()
			}

		case "y":
			m.lastError = ""
			if move, err := m.history.Redo(); err != nil {
				m.lastError = err.Error()
			} else if move != nil {
				m.lastMove = "redo " + move.Notation()
			}

		case "s":
			state, moves, err := cubekit.ScrambledState(cubekit.DefaultScrambleLength, 0)
			if err != nil {
				m.lastError = err.Error()
				break
			}
			m.history.Clear(state)
			m.animations.Reset()
			m.lastMove = "scrambled (" + fmt.Sprint(len(moves)) + " moves)"
			m.lastError = ""

		case "x":
			m.history.Clear(cubekit.NewSolvedState())
			m.animations.Reset()
			m.lastMove = "reset"
			m.lastError = ""

		default:
			if cmd := m.applyKey(key); cmd != nil {
				return m, cmd
			}
		}

	case playTickMsg:
		if _, running := m.animations.Current(); running {
			return m, m.tick()
		}
	}

	return m, nil
}

// applyKey maps a face key to a move and executes it against the current
// state, respecting running animations.
func (m *playModel) applyKey(key string) tea.Cmd {
	if len(key) != 1 {
		return nil
	}

	turn := cubekit.CW
	letter := key
	if letter != strings.ToLower(letter) {
		turn = cubekit.CCW
	}

	face, err := cubekit.ParseFace(strings.ToUpper(letter))
	if err != nil {
		return nil
	}

	next, err := m.manager.ExecuteMove(m.history.Current(), face, turn, m.turnDuration, m.animations.Context())
	if err != nil {
		m.lastError = err.Error()
		return nil
	}

	move := next.MoveHistory[len(next.MoveHistory)-1]
	m.history.ExecuteMove(move, next)
	m.lastMove = move.Notation()
	m.lastError = ""

	if _, err := m.animations.Enqueue(face, turn, m.turnDuration); err == nil {
		return m.tick()
	}
	return nil
}

func (m *playModel) View() string {
	if m.quitting {
		return "Session saved.\n"
	}

	state := m.history.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubekit play"))
	b.WriteString("\n\n")
	b.WriteString(RenderState(state))
	b.WriteString("\n")
	b.WriteString(renderSummary(state))
	b.WriteString("\n")

	if anim, ok := m.animations.Current(); ok {
		b.WriteString(statusStyle.Render(fmt.Sprintf("turning %s (%.0f%%)", anim.Face, anim.Progress()*100)))
		b.WriteString("\n")
	}
	if m.lastMove != "" {
		b.WriteString("Last: " + moveStyle.Render(m.lastMove) + "\n")
	}
	if m.lastError != "" {
		b.WriteString(errorStyle.Render(m.lastError) + "\n")
	}

	if history := state.MoveHistory; len(history) > 0 {
		start := 0
		prefix := ""
		if len(history) > 20 {
			start = len(history) - 20
			prefix = "... "
		}
		b.WriteString("Moves: " + prefix + moveStyle.Render(cubekit.FormatMoves(history[start:])) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("u/d/l/r/f/b=turn  shift=reverse  z=undo  y=redo  s=scramble  x=reset  q=quit"))
	b.WriteString("\n")
	return b.String()
}
