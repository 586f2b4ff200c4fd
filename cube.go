package cubekit

import (
	"math"
	"time"
)

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Valid reports whether c is one of the six cube colors.
func (c Color) Valid() bool {
	return c <= Orange
}

// ParseColor parses a one-character color code (W, Y, G, B, R, O).
func ParseColor(s string) (Color, error) {
	switch s {
	case "W", "w":
		return White, nil
	case "Y", "y":
		return Yellow, nil
	case "G", "g":
		return Green, nil
	case "B", "b":
		return Blue, nil
	case "R", "r":
		return Red, nil
	case "O", "o":
		return Orange, nil
	default:
		return 0, newCorruptionError("invalid_color", "unknown color code %q", s)
	}
}

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
)

// faceOrder is the canonical face ordering used for CubeState.Faces and
// all serialized representations.
var faceOrder = [6]Face{FaceU, FaceD, FaceF, FaceB, FaceR, FaceL}

// FullName returns the lowercase long name of the face ("up", "front", ...).
func (f Face) FullName() string {
	switch f {
	case FaceU:
		return "up"
	case FaceD:
		return "down"
	case FaceF:
		return "front"
	case FaceB:
		return "back"
	case FaceR:
		return "right"
	case FaceL:
		return "left"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	switch f {
	case FaceU, FaceD, FaceF, FaceB, FaceR, FaceL:
		return true
	}
	return false
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	switch f {
	case FaceU:
		return FaceD
	case FaceD:
		return FaceU
	case FaceF:
		return FaceB
	case FaceB:
		return FaceF
	case FaceR:
		return FaceL
	case FaceL:
		return FaceR
	default:
		return f
	}
}

// ParseFace parses a face from a letter ("U") or full name ("up").
func ParseFace(s string) (Face, error) {
	switch s {
	case "U", "u", "up":
		return FaceU, nil
	case "D", "d", "down":
		return FaceD, nil
	case "F", "f", "front":
		return FaceF, nil
	case "B", "b", "back":
		return FaceB, nil
	case "R", "r", "right":
		return FaceR, nil
	case "L", "l", "left":
		return FaceL, nil
	default:
		return "", newMoveError("invalid_face", "unknown face %q", s)
	}
}

// faceIndex returns the canonical slot of f in faceOrder, or -1.
func faceIndex(f Face) int {
	for i, o := range faceOrder {
		if o == f {
			return i
		}
	}
	return -1
}

// SolvedColor returns the canonical color of a face on a solved cube:
// White on top, Green in front.
func SolvedColor(f Face) Color {
	switch f {
	case FaceU:
		return White
	case FaceD:
		return Yellow
	case FaceF:
		return Green
	case FaceB:
		return Blue
	case FaceR:
		return Red
	case FaceL:
		return Orange
	default:
		return White
	}
}

// FaceState is one face of the cube: 9 stickers in row-major order
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// plus a display-only rotation angle that carries no cube semantics.
type FaceState struct {
	Face     Face
	Colors   []Color // always exactly 9, row-major
	Rotation float64 // radians, display only
}

// NewFaceState creates a face filled with a single color.
func NewFaceState(face Face, color Color) FaceState {
	colors := make([]Color, 9)
	for i := range colors {
		colors[i] = color
	}
	return FaceState{Face: face, Colors: colors}
}

// clone deep-copies the face state.
func (fs FaceState) clone() FaceState {
	colors := make([]Color, len(fs.Colors))
	copy(colors, fs.Colors)
	return FaceState{Face: fs.Face, Colors: colors, Rotation: fs.Rotation}
}

// CubeState is an immutable snapshot of the whole cube: six faces in
// canonical order (U, D, F, B, R, L), the chronological move history that
// produced it, and derived flags. Every operation that "changes" a state
// returns a brand-new value; a CubeState is never mutated in place.
type CubeState struct {
	Faces       []FaceState
	MoveHistory []Move
	Scrambled   bool // history is non-empty
	Solved      bool // every sticker matches its face's solved color
	Timestamp   time.Time
}

// NewSolvedState returns the canonical solved cube with empty history.
func NewSolvedState() CubeState {
	faces := make([]FaceState, 6)
	for i, f := range faceOrder {
		faces[i] = NewFaceState(f, SolvedColor(f))
	}
	return CubeState{
		Faces:     faces,
		Solved:    true,
		Timestamp: time.Now(),
	}
}

// NewState builds a CubeState from arbitrary faces. It fails with
// INVALID_FACE_STATE if the face count is not 6, a face type is missing or
// duplicated, or any face does not carry exactly 9 stickers. Faces are
// normalized into canonical order and the Scrambled/Solved flags are
// derived from content.
func NewState(faces []FaceState, history []Move, ts time.Time) (CubeState, error) {
	if len(faces) != 6 {
		return CubeState{}, newFaceStateError("invalid_face_count", "expected 6 faces, got %d", len(faces))
	}

	normalized := make([]FaceState, 6)
	seen := [6]bool{}
	for _, fs := range faces {
		idx := faceIndex(fs.Face)
		if idx < 0 {
			return CubeState{}, newFaceStateError("invalid_face_type", "unknown face type %q", string(fs.Face))
		}
		if seen[idx] {
			return CubeState{}, newFaceStateError("duplicate_face", "duplicate face %s", fs.Face)
		}
		if len(fs.Colors) != 9 {
			return CubeState{}, newFaceStateError("invalid_color_count", "face %s: expected 9 colors, got %d", fs.Face, len(fs.Colors))
		}
		seen[idx] = true
		normalized[idx] = fs.clone()
	}

	if ts.IsZero() {
		ts = time.Now()
	}
	historyCopy := make([]Move, len(history))
	copy(historyCopy, history)

	return CubeState{
		Faces:       normalized,
		MoveHistory: historyCopy,
		Scrambled:   len(historyCopy) > 0,
		Solved:      checkSolved(normalized),
		Timestamp:   ts,
	}, nil
}

// checkSolved reports whether every sticker matches its face's solved color.
func checkSolved(faces []FaceState) bool {
	for _, fs := range faces {
		want := SolvedColor(fs.Face)
		for _, c := range fs.Colors {
			if c != want {
				return false
			}
		}
	}
	return true
}

// FaceState returns the face state for f.
func (s CubeState) FaceState(f Face) (FaceState, bool) {
	idx := faceIndex(f)
	if idx < 0 || idx >= len(s.Faces) {
		return FaceState{}, false
	}
	return s.Faces[idx], true
}

// Clone deep-copies the state and refreshes its timestamp.
func (s CubeState) Clone() CubeState {
	faces := make([]FaceState, len(s.Faces))
	for i, fs := range s.Faces {
		faces[i] = fs.clone()
	}
	history := make([]Move, len(s.MoveHistory))
	copy(history, s.MoveHistory)
	return CubeState{
		Faces:       faces,
		MoveHistory: history,
		Scrambled:   s.Scrambled,
		Solved:      s.Solved,
		Timestamp:   time.Now(),
	}
}

// rotationTolerance is the display-rotation comparison tolerance in radians.
const rotationTolerance = 0.001

// Equal reports sticker-level structural equality of two states. Display
// rotations are compared within a small tolerance; timestamps and move
// history are not part of equality.
func (s CubeState) Equal(other CubeState) bool {
	if len(s.Faces) != len(other.Faces) {
		return false
	}
	for i, fs := range s.Faces {
		os := other.Faces[i]
		if fs.Face != os.Face || len(fs.Colors) != len(os.Colors) {
			return false
		}
		if math.Abs(fs.Rotation-os.Rotation) > rotationTolerance {
			return false
		}
		for j, c := range fs.Colors {
			if c != os.Colors[j] {
				return false
			}
		}
	}
	return true
}

// ApplyMove applies a single face turn and returns the resulting state.
// The turned face's stickers are rotated and the 12 edge stickers on the
// four bordering faces are cycled; the move is appended to the history.
func (s CubeState) ApplyMove(m Move) (CubeState, error) {
	if !m.Face.Valid() {
		return CubeState{}, newMoveError("invalid_face", "unknown face %q", string(m.Face))
	}
	if !m.Turn.Valid() {
		return CubeState{}, newMoveError("invalid_direction", "unknown turn %d", int(m.Turn))
	}

	faces, err := applyTurn(s.Faces, m.Face, m.Turn)
	if err != nil {
		return CubeState{}, err
	}

	history := make([]Move, len(s.MoveHistory)+1)
	copy(history, s.MoveHistory)
	if m.Time.IsZero() {
		m.Time = time.Now()
	}
	history[len(history)-1] = m

	return CubeState{
		Faces:       faces,
		MoveHistory: history,
		Scrambled:   true,
		Solved:      checkSolved(faces),
		Timestamp:   time.Now(),
	}, nil
}

// ApplyMoves applies a sequence of moves left to right.
func (s CubeState) ApplyMoves(moves ...Move) (CubeState, error) {
	state := s
	for _, m := range moves {
		next, err := state.ApplyMove(m)
		if err != nil {
			return CubeState{}, err
		}
		state = next
	}
	return state, nil
}

// String returns a text net of the cube:
//
//	      U U U
//	      U U U
//	      U U U
//	L L L F F F R R R B B B
//	...
func (s CubeState) String() string {
	grid := s.grid()
	result := ""

	// U face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += grid[faceIndex(FaceU)][row*3+col].String() + " "
		}
		result += "\n"
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, face := range []Face{FaceL, FaceF, FaceR, FaceB} {
			for col := 0; col < 3; col++ {
				result += grid[faceIndex(face)][row*3+col].String() + " "
			}
		}
		result += "\n"
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		result += "      "
		for col := 0; col < 3; col++ {
			result += grid[faceIndex(FaceD)][row*3+col].String() + " "
		}
		result += "\n"
	}

	return result
}

// grid copies the sticker colors into a fixed array indexed by canonical
// face slot. Faces with the wrong sticker count come back zero-padded;
// grid is only used after structural validation.
func (s CubeState) grid() [6][9]Color {
	var g [6][9]Color
	for _, fs := range s.Faces {
		idx := faceIndex(fs.Face)
		if idx < 0 {
			continue
		}
		for i, c := range fs.Colors {
			if i >= 9 {
				break
			}
			g[idx][i] = c
		}
	}
	return g
}

