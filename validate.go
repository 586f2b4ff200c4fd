package cubekit

import "time"

// Move validation: decides whether a requested turn may proceed right now,
// given what is currently animating.

// AnimationProgress describes one in-flight face animation as seen by the
// validator.
type AnimationProgress struct {
	Progress  float64       // 0..1
	Remaining time.Duration // time until the animation completes
}

// AnimationContext maps currently animating faces to their progress.
// A nil context means nothing is animating.
type AnimationContext map[Face]AnimationProgress

// adjacentProgressThreshold is the progress an adjacent face's animation
// must reach before a new turn is allowed next to it. Blocking below the
// threshold avoids visually conflicting turns; allowing near-complete ones
// keeps perceived input latency low.
const adjacentProgressThreshold = 0.8

// adjacency is the fixed face-adjacency map. Opposite faces never share an
// edge and are never adjacent.
var adjacency = map[Face][4]Face{
	FaceF: {FaceU, FaceD, FaceL, FaceR},
	FaceB: {FaceU, FaceD, FaceL, FaceR},
	FaceL: {FaceU, FaceD, FaceF, FaceB},
	FaceR: {FaceU, FaceD, FaceF, FaceB},
	FaceU: {FaceF, FaceB, FaceL, FaceR},
	FaceD: {FaceF, FaceB, FaceL, FaceR},
}

// AdjacentFaces returns the four faces sharing an edge with f.
func AdjacentFaces(f Face) []Face {
	adj, ok := adjacency[f]
	if !ok {
		return nil
	}
	return adj[:]
}

// ValidateMove checks whether turning face in the given direction is legal
// right now. Out-of-enum faces and turns fail with INVALID_MOVE. With an
// animation context, a turn on a face that is already animating fails with
// ANIMATION_IN_PROGRESS ("animation_conflict", RetryAfter set to the
// remaining time), and a turn next to an animation that is less than 80%
// complete fails with "adjacent_animation_conflict".
func ValidateMove(face Face, turn Turn, ctx AnimationContext) error {
	if !face.Valid() {
		return newMoveError("invalid_face", "unknown face %q", string(face))
	}
	if !turn.Valid() {
		return newMoveError("invalid_direction", "unknown turn %d", int(turn))
	}
	if ctx == nil {
		return nil
	}

	if anim, ok := ctx[face]; ok {
		return newAnimationError("animation_conflict", anim.Remaining,
			"face %s is already animating (%.0f%% complete)", face, anim.Progress*100)
	}

	for _, adj := range AdjacentFaces(face) {
		anim, ok := ctx[adj]
		if !ok {
			continue
		}
		if anim.Progress < adjacentProgressThreshold {
			return newAnimationError("adjacent_animation_conflict", anim.Remaining,
				"adjacent face %s is animating (%.0f%% complete)", adj, anim.Progress*100)
		}
	}

	return nil
}

// ValidateMoveSequence checks a timed move sequence for conflicts:
// consecutive moves on the same face must not overlap in time, and moves on
// adjacent faces must be separated by at least half the shorter move's
// duration. Sequences of 0 or 1 moves are trivially valid.
func ValidateMoveSequence(moves []Move) error {
	if len(moves) <= 1 {
		return nil
	}

	for i := 1; i < len(moves); i++ {
		prev, cur := moves[i-1], moves[i]
		gap := cur.Time.Sub(prev.Time)

		if cur.Face == prev.Face && gap < prev.Duration {
			return newMoveError("move_overlap",
				"move %d (%s) starts %v after move %d (%s), before its %v animation ends",
				i, cur.Notation(), gap, i-1, prev.Notation(), prev.Duration)
		}

		if isAdjacent(cur.Face, prev.Face) {
			shorter := prev.Duration
			if cur.Duration < shorter {
				shorter = cur.Duration
			}
			if gap < shorter/2 {
				return newMoveError("adjacent_move_overlap",
					"moves %d (%s) and %d (%s) on adjacent faces start %v apart",
					i-1, prev.Notation(), i, cur.Notation(), gap)
			}
		}
	}

	return nil
}

func isAdjacent(a, b Face) bool {
	for _, f := range AdjacentFaces(a) {
		if f == b {
			return true
		}
	}
	return false
}

// CheckSolvability runs the minimal sticker-count sanity gate: every color
// must appear exactly 9 times across the cube's 54 stickers. This is
// necessary but not sufficient; it does not verify permutation or
// orientation parity.
func CheckSolvability(state CubeState) error {
	counts := map[Color]int{}
	total := 0
	for _, fs := range state.Faces {
		for _, c := range fs.Colors {
			if !c.Valid() {
				return newCorruptionError("invalid_color", "face %s carries invalid color %d", fs.Face, byte(c))
			}
			counts[c]++
			total++
		}
	}
	if total != 54 {
		return newCorruptionError("invalid_sticker_count", "expected 54 stickers, got %d", total)
	}
	for c := White; c <= Orange; c++ {
		if counts[c] != 9 {
			return newCorruptionError("wrong_color_count", "color %s appears %d times, expected 9", c, counts[c])
		}
	}
	return nil
}
