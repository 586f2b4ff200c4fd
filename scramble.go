package cubekit

import (
	"math/rand"
	"time"
)

// Scramble generation: random move sequences in the style used by cube
// timers. Consecutive moves never repeat a face, and a face is not turned
// again while only its opposite moved in between (no R L R).

// DefaultScrambleLength is a typical 3x3 scramble length.
const DefaultScrambleLength = 25

var scrambleTurns = []Turn{CW, CCW, Double}

// Scramble generates n random moves. A seed of 0 derives one from the
// clock; any other seed makes the sequence reproducible.
func Scramble(n int, seed int64) []Move {
	if n <= 0 {
		n = DefaultScrambleLength
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	moves := make([]Move, 0, n)
	var prev, beforePrev Face
	for len(moves) < n {
		face := faceOrder[rng.Intn(len(faceOrder))]
		if face == prev {
			continue
		}
		if face == beforePrev && prev == face.Opposite() {
			continue
		}
		turn := scrambleTurns[rng.Intn(len(scrambleTurns))]
		moves = append(moves, Move{Face: face, Turn: turn, Time: time.Now(), Duration: DefaultMoveDuration})
		beforePrev = prev
		prev = face
	}
	return moves
}

// ScrambledState applies a fresh scramble to the solved state and returns
// it together with the moves used.
func ScrambledState(n int, seed int64) (CubeState, []Move, error) {
	moves := Scramble(n, seed)
	state, err := NewSolvedState().ApplyMoves(moves...)
	if err != nil {
		return CubeState{}, nil, err
	}
	return state, moves, nil
}
