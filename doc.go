// Package cubekit implements a 3x3 Rubik's cube state and move engine:
// an immutable cube model, the move/rotation algebra, move and state
// validation, undo/redo history, serialization and a small animation
// queue. It is the logic core behind an interactive cube UI; rendering and
// input handling are left to callers.
//
// # Cube model
//
// A CubeState is a value: six faces of nine stickers each, the move
// history that produced it, and derived Scrambled/Solved flags. Every
// operation returns a new state and never mutates its input:
//
//	state := cubekit.NewSolvedState()
//	state, err := state.ApplyMoves(cubekit.R, cubekit.U, cubekit.RPrime, cubekit.UPrime)
//
// # Moves and notation
//
// Moves use standard cube notation: a face letter optionally followed by
// ' (counter-clockwise) or 2 (half turn):
//
//	move, err := cubekit.ParseMove("U'")
//	seq, err := cubekit.ParseMoves("R U R' U'")
//
// Predefined move constants (cubekit.R, cubekit.RPrime, cubekit.R2, ...)
// cover all 18 face turns.
//
// # Validation and execution
//
// ValidateMove gatekeeps a requested turn against what is currently
// animating; StateManager combines validation, execution, comparison and
// corruption recovery:
//
//	sm := cubekit.NewStateManager()
//	next, err := sm.ExecuteMove(state, cubekit.FaceR, cubekit.CW, 0, anims.Context())
//
// # History
//
// HistoryManager provides bounded undo/redo:
//
//	hist := cubekit.NewHistoryManager(cubekit.NewSolvedState())
//	hist.ExecuteMove(move, next)
//	undone, err := hist.Undo()
//
// # Serialization
//
// States convert to and from JSON, a compact string form and base64, with
// CSV and text exports and a checksummed shareable envelope:
//
//	out, err := cubekit.Serialize(state, cubekit.SerializeOptions{Format: cubekit.FormatJSON})
//	result := cubekit.Deserialize(out, cubekit.SerializeOptions{Format: cubekit.FormatJSON})
//
// # Animations
//
// AnimationManager guarantees at most one face is visually turning at a
// time, with timer-based completion and cancellation:
//
//	anims := cubekit.NewAnimationManager()
//	id, err := anims.Enqueue(cubekit.FaceR, cubekit.CW, 300*time.Millisecond)
package cubekit
