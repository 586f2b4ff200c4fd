package cubekit

import (
	"errors"
	"testing"
	"time"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		face  Face
		turn  Turn
	}{
		{"R", FaceR, CW},
		{"R'", FaceR, CCW},
		{"R2", FaceR, Double},
		{"U", FaceU, CW},
		{"U'", FaceU, CCW},
		{"u'", FaceU, CCW},
		{"F2", FaceF, Double},
		{"L", FaceL, CW},
		{"D'", FaceD, CCW},
		{"B2", FaceB, Double},
		{" R ", FaceR, CW},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMove(tt.input)
			if err != nil {
				t.Fatalf("ParseMove(%q) failed: %v", tt.input, err)
			}
			if m.Face != tt.face || m.Turn != tt.turn {
				t.Errorf("ParseMove(%q) = {%s %v}, want {%s %v}", tt.input, m.Face, m.Turn, tt.face, tt.turn)
			}
		})
	}
}

func TestParseMoveFullNameMapping(t *testing.T) {
	m, err := ParseMove("U'")
	if err != nil {
		t.Fatal(err)
	}
	if m.Face.FullName() != "up" || m.Turn.String() != "counterclockwise" {
		t.Errorf("U' should map to up/counterclockwise, got %s/%s", m.Face.FullName(), m.Turn)
	}
}

func TestParseMoveInvalid(t *testing.T) {
	for _, input := range []string{"", "X", "R3", "RR", "2", "'", "M"} {
		if _, err := ParseMove(input); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMove(%q) should fail with INVALID_MOVE, got %v", input, err)
		}
	}
}

func TestParseMovesSequence(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != "R U R' U'" {
		t.Errorf("Round-trip notation mismatch: %q", got)
	}
}

func TestParseMovesRejectsBadToken(t *testing.T) {
	if _, err := ParseMoves("R U X"); err == nil {
		t.Error("Sequence with invalid token should fail")
	}
}

func TestMoveInverse(t *testing.T) {
	tests := []struct {
		move Move
		want Turn
	}{
		{R, CCW},
		{RPrime, CW},
		{R2, Double},
	}
	for _, tt := range tests {
		if got := tt.move.Inverse().Turn; got != tt.want {
			t.Errorf("%s inverse turn = %v, want %v", tt.move.Notation(), got, tt.want)
		}
	}
}

func TestOppositeTurn(t *testing.T) {
	if got, _ := OppositeTurn(CW); got != CCW {
		t.Errorf("Opposite of CW should be CCW, got %v", got)
	}
	if got, _ := OppositeTurn(CCW); got != CW {
		t.Errorf("Opposite of CCW should be CW, got %v", got)
	}
	if got, _ := OppositeTurn(Double); got != Double {
		t.Errorf("Double should be self-inverse, got %v", got)
	}
	if _, err := OppositeTurn(Turn(5)); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Unknown turn should fail with INVALID_MOVE, got %v", err)
	}
}

func TestNewMoveClampsDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{50 * time.Millisecond, 100 * time.Millisecond},
		{5000 * time.Millisecond, 2000 * time.Millisecond},
		{0, 300 * time.Millisecond},
		{500 * time.Millisecond, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		m, err := NewMove(FaceF, CW, tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if m.Duration != tt.want {
			t.Errorf("NewMove duration %v clamped to %v, want %v", tt.in, m.Duration, tt.want)
		}
	}
}

func TestNewMoveRejectsBadInput(t *testing.T) {
	if _, err := NewMove("X", CW, 0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Bad face should fail with INVALID_MOVE, got %v", err)
	}
	if _, err := NewMove(FaceF, Turn(7), 0); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("Bad turn should fail with INVALID_MOVE, got %v", err)
	}
}

func TestMoveNotation(t *testing.T) {
	if R.Notation() != "R" || RPrime.Notation() != "R'" || R2.Notation() != "R2" {
		t.Error("Predefined move notation mismatch")
	}
}
