package cubekit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStateAcceptsSolved(t *testing.T) {
	report := ValidateState(NewSolvedState())
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestValidateStateAcceptsScrambled(t *testing.T) {
	state, _, err := ScrambledState(25, 3)
	require.NoError(t, err)

	report := ValidateState(state)
	assert.True(t, report.Valid, "errors: %v", report.Errors)
}

func TestValidateStateWarnsOnStaleTimestamp(t *testing.T) {
	state := NewSolvedState()
	state.Timestamp = time.Now().Add(-2 * time.Hour)

	report := ValidateState(state)
	assert.True(t, report.Valid, "staleness is a warning, not a failure")
	assert.NotEmpty(t, report.Warnings)
}

func TestValidateStateWarnsOnFutureTimestamp(t *testing.T) {
	state := NewSolvedState()
	state.Timestamp = time.Now().Add(time.Minute)

	report := ValidateState(state)
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.Warnings)
}

func TestValidateStateRejectsNonChronologicalHistory(t *testing.T) {
	base := time.Now()
	state, err := NewSolvedState().ApplyMoves(
		R.WithTime(base),
		U.WithTime(base.Add(-time.Second)),
	)
	require.NoError(t, err)

	report := ValidateState(state)
	assert.False(t, report.Valid)
}

func TestDetectCorruptionCleanState(t *testing.T) {
	assert.Empty(t, DetectCorruption(NewSolvedState()))
}

func TestDetectCorruptionNilFaces(t *testing.T) {
	defects := DetectCorruption(CubeState{})
	require.Len(t, defects, 1)
	assert.Equal(t, CorruptionNullFaces, defects[0].Code)
}

func TestDetectCorruptionFaceCount(t *testing.T) {
	state := NewSolvedState()
	state.Faces = state.Faces[:4]

	codes := corruptionCodes(DetectCorruption(state))
	assert.Contains(t, codes, CorruptionInvalidFaceCount)
}

func TestDetectCorruptionInvalidColor(t *testing.T) {
	state := NewSolvedState().Clone()
	state.Faces[2].Colors[7] = Color(42)

	defects := DetectCorruption(state)
	require.Len(t, defects, 1)
	assert.Equal(t, CorruptionInvalidColor, defects[0].Code)
	assert.Equal(t, 2, defects[0].FaceIndex)
	assert.Equal(t, 7, defects[0].Position)
}

func TestDetectCorruptionDuplicateAndMissingFaces(t *testing.T) {
	state := NewSolvedState().Clone()
	state.Faces[1].Face = FaceU // U now duplicated, D missing

	codes := corruptionCodes(DetectCorruption(state))
	assert.Contains(t, codes, CorruptionDuplicateFaces)
	assert.Contains(t, codes, CorruptionMissingFaces)
}

func TestDetectCorruptionNilColors(t *testing.T) {
	state := NewSolvedState().Clone()
	state.Faces[3].Colors = nil

	codes := corruptionCodes(DetectCorruption(state))
	assert.Contains(t, codes, CorruptionNullColors)
}

func TestDetectCorruptionShortColors(t *testing.T) {
	state := NewSolvedState().Clone()
	state.Faces[5].Colors = state.Faces[5].Colors[:6]

	codes := corruptionCodes(DetectCorruption(state))
	assert.Contains(t, codes, CorruptionInvalidColorCount)
}

func corruptionCodes(defects []CorruptionError) []string {
	codes := make([]string, len(defects))
	for i, d := range defects {
		codes[i] = d.Code
	}
	return codes
}
