package cubekit

import (
	"strings"
	"time"
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Valid reports whether t is a recognized turn.
func (t Turn) Valid() bool {
	return t == CW || t == CCW || t == Double
}

func (t Turn) String() string {
	switch t {
	case CW:
		return "clockwise"
	case CCW:
		return "counterclockwise"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// OppositeTurn returns the inverse of a turn: CW<->CCW, Double is its own
// inverse. Unrecognized turns fail with INVALID_MOVE.
func OppositeTurn(t Turn) (Turn, error) {
	switch t {
	case CW:
		return CCW, nil
	case CCW:
		return CW, nil
	case Double:
		return Double, nil
	default:
		return 0, newMoveError("invalid_direction", "unknown turn %d", int(t))
	}
}

// Animation duration bounds for a single move.
const (
	MinMoveDuration     = 100 * time.Millisecond
	MaxMoveDuration     = 2000 * time.Millisecond
	DefaultMoveDuration = 300 * time.Millisecond
)

// Move represents a single cube move: the face to turn, the turn direction,
// when it happened, and how long its visual transition runs.
type Move struct {
	Face     Face
	Turn     Turn
	Time     time.Time
	Duration time.Duration // animation length, clamped to [100ms, 2s]
}

// NewMove validates the face and turn and clamps the duration into
// [MinMoveDuration, MaxMoveDuration]. A zero duration selects the default.
func NewMove(face Face, turn Turn, duration time.Duration) (Move, error) {
	if !face.Valid() {
		return Move{}, newMoveError("invalid_face", "unknown face %q", string(face))
	}
	if !turn.Valid() {
		return Move{}, newMoveError("invalid_direction", "unknown turn %d", int(turn))
	}
	if duration == 0 {
		duration = DefaultMoveDuration
	}
	if duration < MinMoveDuration {
		duration = MinMoveDuration
	}
	if duration > MaxMoveDuration {
		duration = MaxMoveDuration
	}
	return Move{Face: face, Turn: turn, Time: time.Now(), Duration: duration}, nil
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2, U, U', U2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
		// Double is its own inverse
	}
	return inv
}

// WithTime returns a copy of the move with the specified timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a standard notation token into a Move. The grammar is
// a face letter [UDLRFB] optionally followed by ' (counter-clockwise) or
// 2 (half turn); no suffix means clockwise.
// Examples: R, R', R2, U, U', U2
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, newMoveError("invalid_notation", "empty move string")
	}

	face, err := ParseFace(s[:1])
	if err != nil {
		return Move{}, newMoveError("invalid_notation", "bad face in move %q", s)
	}

	turn := CW // Default is clockwise
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = CCW
		case "2":
			turn = Double
		default:
			return Move{}, newMoveError("invalid_notation", "bad suffix in move %q", s)
		}
	}

	return Move{Face: face, Turn: turn, Duration: DefaultMoveDuration}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// Fails on the first invalid token.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
