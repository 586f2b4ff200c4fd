package cubekit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrambledFixture(t *testing.T) CubeState {
	t.Helper()
	state, _, err := ScrambledState(12, 42)
	require.NoError(t, err)
	return state
}

func TestSerializeJSONRoundTrip(t *testing.T) {
	state := scrambledFixture(t)

	data, err := Serialize(state, SerializeOptions{Format: FormatJSON, IncludeHistory: true})
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(data)))

	result := Deserialize(data, SerializeOptions{Format: FormatJSON, Validate: true})
	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.True(t, result.State.Equal(state))
	assert.Equal(t, len(state.MoveHistory), len(result.State.MoveHistory))
	assert.Equal(t, state.Scrambled, result.State.Scrambled)
}

func TestSerializeJSONPretty(t *testing.T) {
	data, err := Serialize(NewSolvedState(), SerializeOptions{Format: FormatJSON, Pretty: true})
	require.NoError(t, err)
	assert.Contains(t, data, "\n  ")
}

func TestSerializeCompactRoundTrip(t *testing.T) {
	state := scrambledFixture(t)

	data, err := Serialize(state, SerializeOptions{Format: FormatCompact})
	require.NoError(t, err)

	parts := strings.Split(data, ":")
	require.Len(t, parts, 4)
	assert.Len(t, strings.Split(parts[0], "|"), 6)
	assert.Equal(t, "10", parts[2], "scrambled=1 solved=0")

	result := Deserialize(data, SerializeOptions{Format: FormatCompact, Validate: true})
	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.True(t, result.State.Equal(state))
	assert.True(t, result.State.Scrambled, "the compact flag bit carries scrambled across the trip")
}

func TestSerializeBase64RoundTrip(t *testing.T) {
	state := scrambledFixture(t)

	data, err := Serialize(state, SerializeOptions{Format: FormatBase64, IncludeHistory: true})
	require.NoError(t, err)
	assert.NotContains(t, data, "{", "base64 output must not leak raw JSON")

	result := Deserialize(data, SerializeOptions{Format: FormatBase64})
	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.True(t, result.State.Equal(state))
}

func TestSerializeValidateRefusesCorruptState(t *testing.T) {
	state := NewSolvedState().Clone()
	state.Faces[0].Colors[0] = Color(99)

	_, err := Serialize(state, SerializeOptions{Format: FormatJSON, Validate: true})
	assert.ErrorIs(t, err, ErrStateCorruption)
}

func TestSerializeUnknownFormat(t *testing.T) {
	_, err := Serialize(NewSolvedState(), SerializeOptions{Format: "xml"})
	assert.ErrorIs(t, err, ErrStateCorruption)
}

func TestSerializeCSVShape(t *testing.T) {
	data, err := Serialize(NewSolvedState(), SerializeOptions{Format: FormatCSV})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(data), "\n")
	require.Len(t, lines, 55, "header plus one line per sticker")
	assert.Equal(t, "face,row,col,color,rotation", lines[0])
	assert.Equal(t, "U,0,0,W,0", lines[1])
	assert.Equal(t, "U,2,2,W,0", lines[9])
}

func TestSerializeTextShape(t *testing.T) {
	state, err := NewSolvedState().ApplyMoves(R, U)
	require.NoError(t, err)

	data, serr := Serialize(state, SerializeOptions{Format: FormatText})
	require.NoError(t, serr)
	assert.Contains(t, data, "Moves: 2")
	assert.Contains(t, data, "History: R U")
}

func TestDeserializeCollectsErrors(t *testing.T) {
	result := Deserialize("not json at all", SerializeOptions{Format: FormatJSON})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)

	result = Deserialize("abc:def", SerializeOptions{Format: FormatCompact})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Errors)
}

func TestDeserializeRejectsBadColor(t *testing.T) {
	data, err := Serialize(NewSolvedState(), SerializeOptions{Format: FormatJSON})
	require.NoError(t, err)

	tampered := strings.Replace(data, `"W"`, `"Z"`, 1)
	result := Deserialize(tampered, SerializeOptions{Format: FormatJSON})
	assert.False(t, result.Success)
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.json")
	require.NoError(t, ExportToFile(NewSolvedState(), path, FormatJSON))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}

func TestShareableRoundTrip(t *testing.T) {
	state := scrambledFixture(t)
	meta := ShareMetadata{Difficulty: "medium", Tags: []string{"practice"}}

	envelope, err := CreateShareableConfiguration(state, meta)
	require.NoError(t, err)

	var decoded ShareableConfiguration
	require.NoError(t, json.Unmarshal([]byte(envelope), &decoded))
	assert.Equal(t, ShareFormatVersion, decoded.Version)
	assert.Equal(t, "cubekit", decoded.Metadata.Source, "empty source gets the default")
	assert.NotZero(t, decoded.Checksum)

	result := ImportShareableConfiguration(envelope)
	require.True(t, result.Success, "errors: %v", result.Errors)
	assert.True(t, result.State.Equal(state))
}

func TestShareableChecksumTamperFails(t *testing.T) {
	envelope, err := CreateShareableConfiguration(NewSolvedState(), ShareMetadata{})
	require.NoError(t, err)

	var decoded ShareableConfiguration
	require.NoError(t, json.Unmarshal([]byte(envelope), &decoded))
	decoded.State = json.RawMessage(strings.Replace(string(decoded.State), `"W"`, `"G"`, 1))
	tampered, err := json.Marshal(decoded)
	require.NoError(t, err)

	result := ImportShareableConfiguration(string(tampered))
	assert.False(t, result.Success)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "checksum mismatch")
}

func TestShareableVersionMismatchWarns(t *testing.T) {
	envelope, err := CreateShareableConfiguration(NewSolvedState(), ShareMetadata{})
	require.NoError(t, err)

	var decoded ShareableConfiguration
	require.NoError(t, json.Unmarshal([]byte(envelope), &decoded))
	decoded.Version = "0.9"
	altered, err := json.Marshal(decoded)
	require.NoError(t, err)

	result := ImportShareableConfiguration(string(altered))
	assert.True(t, result.Success, "an older version still parses")
	assert.NotEmpty(t, result.Warnings)
}

func TestImportRejectsEmptyEnvelope(t *testing.T) {
	result := ImportShareableConfiguration(`{"version":"1.0","checksum":0}`)
	assert.False(t, result.Success)
}
