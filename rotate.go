package cubekit

// Grid rotation primitives and face-turn kinematics.
//
// A face's 9 stickers are indexed row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) never moves.

// cwPermutation maps destination index -> source index for a 90-degree
// clockwise rotation (transpose then reverse rows).
var cwPermutation = [9]int{6, 3, 0, 7, 4, 1, 8, 5, 2}

// ccwPermutation is the inverse of cwPermutation.
var ccwPermutation = [9]int{2, 5, 8, 1, 4, 7, 0, 3, 6}

// RotateGridCW rotates a 3x3 sticker grid 90 degrees clockwise and returns
// a new slice. Fails with STATE_CORRUPTION if the input is not 9 stickers.
func RotateGridCW(colors []Color) ([]Color, error) {
	return permute(colors, cwPermutation)
}

// RotateGridCCW rotates a 3x3 sticker grid 90 degrees counter-clockwise.
func RotateGridCCW(colors []Color) ([]Color, error) {
	return permute(colors, ccwPermutation)
}

// RotateGrid180 rotates a 3x3 sticker grid 180 degrees (full reversal).
func RotateGrid180(colors []Color) ([]Color, error) {
	if len(colors) != 9 {
		return nil, newCorruptionError("invalid_color_count", "expected 9 colors, got %d", len(colors))
	}
	out := make([]Color, 9)
	for i := range colors {
		out[i] = colors[8-i]
	}
	return out, nil
}

func permute(colors []Color, perm [9]int) ([]Color, error) {
	if len(colors) != 9 {
		return nil, newCorruptionError("invalid_color_count", "expected 9 colors, got %d", len(colors))
	}
	out := make([]Color, 9)
	for i, src := range perm {
		out[i] = colors[src]
	}
	return out, nil
}

// strip identifies 3 stickers on one face.
type strip struct {
	face    Face
	indices [3]int
}

// edgeCycles maps each face to the four 3-sticker strips on its bordering
// faces, listed in the order they cycle for a clockwise turn: strip 0
// receives strip 3, strip 3 receives strip 2, and so on.
var edgeCycles = map[Face][4]strip{
	// U moves the top rows F -> L -> B -> R -> F.
	FaceU: {
		{FaceF, [3]int{0, 1, 2}},
		{FaceL, [3]int{0, 1, 2}},
		{FaceB, [3]int{0, 1, 2}},
		{FaceR, [3]int{0, 1, 2}},
	},
	// D moves the bottom rows F -> R -> B -> L -> F.
	FaceD: {
		{FaceF, [3]int{6, 7, 8}},
		{FaceR, [3]int{6, 7, 8}},
		{FaceB, [3]int{6, 7, 8}},
		{FaceL, [3]int{6, 7, 8}},
	},
	// F moves U bottom row -> R left column -> D top row -> L right column.
	FaceF: {
		{FaceU, [3]int{6, 7, 8}},
		{FaceR, [3]int{0, 3, 6}},
		{FaceD, [3]int{2, 1, 0}},
		{FaceL, [3]int{8, 5, 2}},
	},
	// B moves U top row -> L left column -> D bottom row -> R right column.
	FaceB: {
		{FaceU, [3]int{2, 1, 0}},
		{FaceL, [3]int{0, 3, 6}},
		{FaceD, [3]int{6, 7, 8}},
		{FaceR, [3]int{8, 5, 2}},
	},
	// R moves U right column -> B left column -> D right column -> F right column.
	FaceR: {
		{FaceU, [3]int{2, 5, 8}},
		{FaceB, [3]int{6, 3, 0}},
		{FaceD, [3]int{2, 5, 8}},
		{FaceF, [3]int{2, 5, 8}},
	},
	// L moves U left column -> F left column -> D left column -> B right column.
	FaceL: {
		{FaceU, [3]int{0, 3, 6}},
		{FaceF, [3]int{0, 3, 6}},
		{FaceD, [3]int{0, 3, 6}},
		{FaceB, [3]int{8, 5, 2}},
	},
}

// applyTurn performs one face turn on a canonically ordered face slice and
// returns a fresh slice; the input is never modified. The turned face's own
// stickers rotate and the four bordering strips cycle in the turn's
// direction. Double turns are two clockwise quarter turns.
func applyTurn(faces []FaceState, face Face, turn Turn) ([]FaceState, error) {
	if len(faces) != 6 {
		return nil, newCorruptionError("invalid_face_count", "expected 6 faces, got %d", len(faces))
	}

	// Work on a mutable copy.
	out := make([]FaceState, 6)
	for i, fs := range faces {
		out[i] = fs.clone()
	}

	quarters := 0
	switch turn {
	case CW:
		quarters = 1
	case CCW:
		quarters = 3
	case Double:
		quarters = 2
	default:
		return nil, newMoveError("invalid_direction", "unknown turn %d", int(turn))
	}

	for q := 0; q < quarters; q++ {
		if err := quarterTurnCW(out, face); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// quarterTurnCW mutates faces in place with one clockwise quarter turn.
func quarterTurnCW(faces []FaceState, face Face) error {
	idx := faceIndex(face)
	if idx < 0 {
		return newMoveError("invalid_face", "unknown face %q", string(face))
	}

	rotated, err := RotateGridCW(faces[idx].Colors)
	if err != nil {
		return err
	}
	faces[idx].Colors = rotated

	cycle := edgeCycles[face]

	// Save strip 0, then shift 0 <- 3, 3 <- 2, 2 <- 1, 1 <- saved,
	// so strip contents travel 0 -> 1 -> 2 -> 3 -> 0.
	var saved [3]Color
	for k, pos := range cycle[0].indices {
		saved[k] = faces[faceIndex(cycle[0].face)].Colors[pos]
	}
	shifts := [3][2]int{{0, 3}, {3, 2}, {2, 1}}
	for _, sh := range shifts {
		dst, src := cycle[sh[0]], cycle[sh[1]]
		for k := range dst.indices {
			faces[faceIndex(dst.face)].Colors[dst.indices[k]] = faces[faceIndex(src.face)].Colors[src.indices[k]]
		}
	}
	for k, pos := range cycle[1].indices {
		faces[faceIndex(cycle[1].face)].Colors[pos] = saved[k]
	}

	return nil
}
