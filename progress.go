package cubekit

// Solve-phase detection for the layer-by-layer method.
// Standard orientation: White on top (U), Green in front (F).

// Phase represents the current solving phase. Phases are ordered from
// Scrambled (0) to Solved, so they compare with < and >.
type Phase int

const (
	PhaseScrambled Phase = iota
	PhaseWhiteCross
	PhaseTopLayer
	PhaseMiddleLayer
	PhaseBottomCross
	PhaseCornersPositioned
	PhaseCornersOriented
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseWhiteCross:
		return "white_cross"
	case PhaseTopLayer:
		return "top_corners"
	case PhaseMiddleLayer:
		return "middle_layer"
	case PhaseBottomCross:
		return "bottom_cross"
	case PhaseCornersPositioned:
		return "position_corners"
	case PhaseCornersOriented:
		return "rotate_corners"
	case PhaseSolved:
		return "complete"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseWhiteCross:
		return "White Cross"
	case PhaseTopLayer:
		return "Top Layer"
	case PhaseMiddleLayer:
		return "Middle Layer (F2L)"
	case PhaseBottomCross:
		return "Bottom Cross"
	case PhaseCornersPositioned:
		return "Corners Positioned"
	case PhaseCornersOriented:
		return "Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// PhaseProgress reports which phases are complete.
type PhaseProgress struct {
	WhiteCross        bool
	TopLayer          bool
	MiddleLayer       bool
	BottomCross       bool
	CornersPositioned bool
	CornersOriented   bool
	Solved            bool
}

// DetectPhase returns the highest phase the state satisfies.
func DetectPhase(state CubeState) Phase {
	g := state.grid()
	if checkSolved(state.Faces) {
		return PhaseSolved
	}
	if bottomCornersOriented(g) {
		return PhaseCornersOriented // edges might still need a final U turn
	}
	if bottomCornersPositioned(g) {
		return PhaseCornersPositioned
	}
	if bottomCrossComplete(g) {
		return PhaseBottomCross
	}
	if middleLayerComplete(g) {
		return PhaseMiddleLayer
	}
	if topLayerComplete(g) {
		return PhaseTopLayer
	}
	if whiteCrossComplete(g) {
		return PhaseWhiteCross
	}
	return PhaseScrambled
}

// Progress returns the per-phase completion flags for a state.
func Progress(state CubeState) PhaseProgress {
	g := state.grid()
	return PhaseProgress{
		WhiteCross:        whiteCrossComplete(g),
		TopLayer:          topLayerComplete(g),
		MiddleLayer:       middleLayerComplete(g),
		BottomCross:       bottomCrossComplete(g),
		CornersPositioned: bottomCornersPositioned(g),
		CornersOriented:   bottomCornersOriented(g),
		Solved:            checkSolved(state.Faces),
	}
}

var (
	idxU = faceIndex(FaceU)
	idxD = faceIndex(FaceD)
	idxF = faceIndex(FaceF)
	idxB = faceIndex(FaceB)
	idxR = faceIndex(FaceR)
	idxL = faceIndex(FaceL)
)

// whiteCrossComplete: the 4 white edges sit on U and each edge's other
// sticker matches its side face's center.
func whiteCrossComplete(g [6][9]Color) bool {
	for _, pos := range []int{1, 3, 5, 7} {
		if g[idxU][pos] != White {
			return false
		}
	}
	for _, side := range []int{idxB, idxL, idxR, idxF} {
		if g[side][1] != g[side][4] {
			return false
		}
	}
	return true
}

// topLayerComplete: white cross plus all white corners in place.
func topLayerComplete(g [6][9]Color) bool {
	if !whiteCrossComplete(g) {
		return false
	}
	for i := 0; i < 9; i++ {
		if g[idxU][i] != White {
			return false
		}
	}
	for _, side := range []int{idxF, idxR, idxB, idxL} {
		if g[side][0] != g[side][4] || g[side][2] != g[side][4] {
			return false
		}
	}
	return true
}

// middleLayerComplete: top layer plus the 4 middle edges in place.
func middleLayerComplete(g [6][9]Color) bool {
	if !topLayerComplete(g) {
		return false
	}
	for _, side := range []int{idxF, idxR, idxB, idxL} {
		center := g[side][4]
		if g[side][3] != center || g[side][5] != center {
			return false
		}
	}
	return true
}

// bottomCrossComplete: the 4 D-face edges show yellow. Positions are not
// checked, matching how the cross is usually formed before permuting.
func bottomCrossComplete(g [6][9]Color) bool {
	if !middleLayerComplete(g) {
		return false
	}
	for _, pos := range []int{1, 3, 5, 7} {
		if g[idxD][pos] != Yellow {
			return false
		}
	}
	return true
}

// bottomCornersPositioned: each bottom corner carries the right color set,
// possibly mis-oriented.
func bottomCornersPositioned(g [6][9]Color) bool {
	if !bottomCrossComplete(g) {
		return false
	}

	corners := []struct {
		positions [3][2]int // (face, index) pairs
		colors    [3]Color  // expected colors in any order
	}{
		{[3][2]int{{idxF, 8}, {idxR, 6}, {idxD, 2}}, [3]Color{Green, Red, Yellow}},
		{[3][2]int{{idxR, 8}, {idxB, 6}, {idxD, 8}}, [3]Color{Red, Blue, Yellow}},
		{[3][2]int{{idxB, 8}, {idxL, 6}, {idxD, 6}}, [3]Color{Blue, Orange, Yellow}},
		{[3][2]int{{idxL, 8}, {idxF, 6}, {idxD, 0}}, [3]Color{Orange, Green, Yellow}},
	}

	for _, corner := range corners {
		var actual [3]Color
		for i, pos := range corner.positions {
			actual[i] = g[pos[0]][pos[1]]
		}
		if !sameColorSet(actual, corner.colors) {
			return false
		}
	}
	return true
}

// bottomCornersOriented: all of D is yellow and the side-face bottom
// corners match their centers.
func bottomCornersOriented(g [6][9]Color) bool {
	if !bottomCornersPositioned(g) {
		return false
	}
	for i := 0; i < 9; i++ {
		if g[idxD][i] != Yellow {
			return false
		}
	}
	for _, side := range []int{idxF, idxR, idxB, idxL} {
		center := g[side][4]
		if g[side][6] != center || g[side][8] != center {
			return false
		}
	}
	return true
}

// sameColorSet compares two color triples ignoring order.
func sameColorSet(a, b [3]Color) bool {
	count := make(map[Color]int, 3)
	for _, c := range a {
		count[c]++
	}
	for _, c := range b {
		count[c]--
	}
	for _, v := range count {
		if v != 0 {
			return false
		}
	}
	return true
}
