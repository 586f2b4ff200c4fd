package cubekit

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietManager() *StateManager {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewStateManager(WithLogger(log))
}

func TestExecuteMovePermutesStickers(t *testing.T) {
	sm := quietManager()
	state := NewSolvedState()

	next, err := sm.ExecuteMove(state, FaceR, CW, 0, nil)
	require.NoError(t, err)

	assert.False(t, next.Solved)
	assert.True(t, next.Scrambled)
	require.Len(t, next.MoveHistory, 1)
	assert.Equal(t, "R", next.MoveHistory[0].Notation())

	// After R, the U face right column shows the front color (green).
	up, ok := next.FaceState(FaceU)
	require.True(t, ok)
	for _, i := range []int{2, 5, 8} {
		assert.Equal(t, Green, up.Colors[i], "U sticker %d", i)
	}

	// Color distribution must survive every execution.
	require.NoError(t, CheckSolvability(next))
}

func TestExecuteMoveRejectsAnimationConflict(t *testing.T) {
	sm := quietManager()
	ctx := AnimationContext{FaceR: {Progress: 0.2, Remaining: 200 * time.Millisecond}}

	_, err := sm.ExecuteMove(NewSolvedState(), FaceR, CW, 0, ctx)
	assert.ErrorIs(t, err, ErrAnimationInProgress)
}

func TestExecuteMoveRejectsBadFace(t *testing.T) {
	sm := quietManager()
	_, err := sm.ExecuteMove(NewSolvedState(), "Q", CW, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestCompareStatesIdentical(t *testing.T) {
	sm := quietManager()
	a := NewSolvedState()

	result := sm.CompareStates(a, a.Clone())
	assert.True(t, result.Equal)
	assert.Empty(t, result.Differences)
	assert.InDelta(t, 1.0, result.Similarity, 1e-9)
}

func TestCompareStatesSticker(t *testing.T) {
	sm := quietManager()
	a := NewSolvedState()
	b := a.Clone()
	b.Faces[0].Colors[3] = Green

	result := sm.CompareStates(a, b)
	assert.False(t, result.Equal)
	require.Len(t, result.Differences, 1)
	diff := result.Differences[0]
	assert.Equal(t, "sticker", diff.Kind)
	assert.Equal(t, FaceU, diff.Face)
	assert.Equal(t, 1, diff.Row)
	assert.Equal(t, 0, diff.Col)
	assert.InDelta(t, 53.0/54.0, result.Similarity, 1e-9)
}

func TestCompareStatesRotation(t *testing.T) {
	sm := quietManager()
	a := NewSolvedState()
	b := a.Clone()
	b.Faces[2].Rotation = 0.5

	result := sm.CompareStates(a, b)
	assert.False(t, result.Equal)
	require.Len(t, result.Differences, 1)
	assert.Equal(t, "rotation", result.Differences[0].Kind)
}

func TestAnalyzeSolvedState(t *testing.T) {
	sm := quietManager()

	analysis := sm.AnalyzeSolvedState(NewSolvedState())
	assert.True(t, analysis.Solved)
	assert.Len(t, analysis.CompletedFaces, 6)
	assert.Zero(t, analysis.IncorrectStickers)
	assert.InDelta(t, 100.0, analysis.SolvedPercentage, 1e-9)

	// One R turn disturbs stickers on U, F, D and B but leaves R itself
	// and L fully canonical.
	state, err := NewSolvedState().ApplyMove(R)
	require.NoError(t, err)
	analysis = sm.AnalyzeSolvedState(state)
	assert.False(t, analysis.Solved)
	assert.Contains(t, analysis.CompletedFaces, FaceR)
	assert.Contains(t, analysis.CompletedFaces, FaceL)
	assert.Len(t, analysis.CompletedFaces, 2)
	assert.Equal(t, 12, analysis.IncorrectStickers)
}

func TestDetectAndRecoverCleanState(t *testing.T) {
	sm := quietManager()
	result := sm.DetectAndRecover(NewSolvedState())
	assert.False(t, result.Corrupted)
	assert.False(t, result.Recovered)
}

func TestDetectAndRecoverSingleSticker(t *testing.T) {
	sm := quietManager()
	state := NewSolvedState().Clone()
	state.Faces[1].Colors[4] = Color(99)

	result := sm.DetectAndRecover(state)
	assert.True(t, result.Corrupted)
	assert.True(t, result.Recovered)
	assert.NotEmpty(t, result.Steps)
	assert.Equal(t, Yellow, result.State.Faces[1].Colors[4], "D sticker should be reset to canonical yellow")
	assert.Empty(t, DetectCorruption(result.State))
}

func TestDetectAndRecoverStructuralFallsBackToSolved(t *testing.T) {
	sm := quietManager()
	state := NewSolvedState().Clone()
	state.Faces[1].Face = FaceU // duplicate + missing

	result := sm.DetectAndRecover(state)
	assert.True(t, result.Corrupted)
	assert.True(t, result.Recovered)
	assert.True(t, result.State.Equal(NewSolvedState()))
}

func TestChecksumStability(t *testing.T) {
	sm := quietManager()
	a := NewSolvedState()

	assert.Equal(t, sm.Checksum(a), sm.Checksum(a.Clone()),
		"checksum must depend on stickers only, not timestamps")

	b, err := a.ApplyMove(U)
	require.NoError(t, err)
	assert.NotEqual(t, sm.Checksum(a), sm.Checksum(b))
}

func TestRollingChecksum(t *testing.T) {
	// h = (h<<5) - h + ch over "AB": 65*31 + 66 = 2081.
	assert.Equal(t, uint32(2081), RollingChecksum("AB"))
	assert.Equal(t, uint32(0), RollingChecksum(""))
}

func TestStatistics(t *testing.T) {
	sm := quietManager()
	state, err := NewSolvedState().ApplyMoves(R, U)
	require.NoError(t, err)

	stats := sm.Statistics(state)
	assert.Equal(t, 2, stats.MoveCount)
	assert.Less(t, stats.SolvedPercentage, 100.0)
	assert.GreaterOrEqual(t, stats.Age, time.Duration(0))
}
