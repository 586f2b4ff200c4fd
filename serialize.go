package cubekit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// State serialization: lossless conversion of validated states to and from
// transport formats. JSON is the canonical representation; the compact
// string and base64 forms derive from it or mirror it.

// Format selects a serialization format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCompact Format = "compact"
	FormatBase64  Format = "base64"
	FormatCSV     Format = "csv"  // export only
	FormatText    Format = "text" // export only
)

// SerializeOptions controls serialization behavior.
type SerializeOptions struct {
	Format         Format
	Pretty         bool // JSON indentation
	IncludeHistory bool
	Validate       bool // run ValidateState before/after conversion
}

// JSON wire shapes. Timestamps travel as Unix milliseconds.
type stateJSON struct {
	Faces       []faceJSON `json:"faces"`
	MoveHistory []moveJSON `json:"moveHistory,omitempty"`
	IsScrambled bool       `json:"isScrambled"`
	IsSolved    bool       `json:"isSolved"`
	Timestamp   int64      `json:"timestamp"`
}

type faceJSON struct {
	Face     string   `json:"face"`
	Colors   []string `json:"colors"`
	Rotation float64  `json:"rotation"`
}

type moveJSON struct {
	Face       string `json:"face"`
	Turn       int    `json:"turn"`
	Time       int64  `json:"time"`
	DurationMs int64  `json:"durationMs"`
}

// Serialize converts a state to the requested format. With Validate set,
// an invalid state fails with STATE_CORRUPTION before any output is
// produced.
func Serialize(state CubeState, opts SerializeOptions) (string, error) {
	if opts.Validate {
		if report := ValidateState(state); !report.Valid {
			return "", newCorruptionError("invalid_state", "refusing to serialize: %s", strings.Join(report.Errors, "; "))
		}
	}

	switch opts.Format {
	case FormatJSON, "":
		return serializeJSON(state, opts)
	case FormatCompact:
		return serializeCompact(state)
	case FormatBase64:
		js, err := serializeJSON(state, SerializeOptions{Format: FormatJSON, IncludeHistory: opts.IncludeHistory})
		if err != nil {
			return "", err
		}
		return base64.StdEncoding.EncodeToString([]byte(js)), nil
	case FormatCSV:
		return serializeCSV(state), nil
	case FormatText:
		return serializeText(state), nil
	default:
		return "", newCorruptionError("unknown_format", "unsupported format %q", string(opts.Format))
	}
}

func serializeJSON(state CubeState, opts SerializeOptions) (string, error) {
	wire := toWire(state, opts.IncludeHistory)
	var (
		data []byte
		err  error
	)
	if opts.Pretty {
		data, err = json.MarshalIndent(wire, "", "  ")
	} else {
		data, err = json.Marshal(wire)
	}
	if err != nil {
		return "", newCorruptionError("marshal_failed", "json marshal: %v", err)
	}
	return string(data), nil
}

func toWire(state CubeState, includeHistory bool) stateJSON {
	wire := stateJSON{
		Faces:       make([]faceJSON, len(state.Faces)),
		IsScrambled: state.Scrambled,
		IsSolved:    state.Solved,
		Timestamp:   state.Timestamp.UnixMilli(),
	}
	for i, fs := range state.Faces {
		colors := make([]string, len(fs.Colors))
		for j, c := range fs.Colors {
			colors[j] = c.String()
		}
		wire.Faces[i] = faceJSON{Face: string(fs.Face), Colors: colors, Rotation: fs.Rotation}
	}
	if includeHistory {
		wire.MoveHistory = make([]moveJSON, len(state.MoveHistory))
		for i, m := range state.MoveHistory {
			wire.MoveHistory[i] = moveJSON{
				Face:       string(m.Face),
				Turn:       int(m.Turn),
				Time:       m.Time.UnixMilli(),
				DurationMs: m.Duration.Milliseconds(),
			}
		}
	}
	return wire
}

// serializeCompact emits the colon-delimited compact form:
//
//	faceColors('|'-joined, 9 chars per face) : rotations(csv) : scrambled+solved bits : unix millis
//
// Faces appear in canonical order (U, D, F, B, R, L).
func serializeCompact(state CubeState) (string, error) {
	faceParts := make([]string, 0, 6)
	rotParts := make([]string, 0, 6)
	for _, f := range faceOrder {
		fs, ok := state.FaceState(f)
		if !ok || len(fs.Colors) != 9 {
			return "", newCorruptionError("invalid_state", "face %s missing or malformed", f)
		}
		var b strings.Builder
		for _, c := range fs.Colors {
			b.WriteString(c.String())
		}
		faceParts = append(faceParts, b.String())
		rotParts = append(rotParts, strconv.FormatFloat(fs.Rotation, 'f', -1, 64))
	}

	flags := bitChar(state.Scrambled) + bitChar(state.Solved)
	return strings.Join(faceParts, "|") + ":" +
		strings.Join(rotParts, ",") + ":" +
		flags + ":" +
		strconv.FormatInt(state.Timestamp.UnixMilli(), 10), nil
}

func bitChar(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func serializeCSV(state CubeState) string {
	var b strings.Builder
	b.WriteString("face,row,col,color,rotation\n")
	for _, f := range faceOrder {
		fs, ok := state.FaceState(f)
		if !ok {
			continue
		}
		for i, c := range fs.Colors {
			fmt.Fprintf(&b, "%s,%d,%d,%s,%g\n", fs.Face, i/3, i%3, c, fs.Rotation)
		}
	}
	return b.String()
}

func serializeText(state CubeState) string {
	var b strings.Builder
	b.WriteString("Cube state\n")
	fmt.Fprintf(&b, "Solved: %v  Scrambled: %v  Moves: %d\n", state.Solved, state.Scrambled, len(state.MoveHistory))
	fmt.Fprintf(&b, "Timestamp: %s\n\n", state.Timestamp.Format(time.RFC3339))
	b.WriteString(state.String())
	if len(state.MoveHistory) > 0 {
		b.WriteString("\nHistory: " + FormatMoves(state.MoveHistory) + "\n")
	}
	return b.String()
}

// DeserializeResult accumulates the outcome of a deserialization attempt.
// Parse problems are collected as errors rather than thrown, so callers
// get everything that went wrong in one pass.
type DeserializeResult struct {
	Success  bool
	State    CubeState
	Errors   []string
	Warnings []string
}

func (r *DeserializeResult) fail(format string, args ...interface{}) *DeserializeResult {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Success = false
	return r
}

// Deserialize parses serialized data back into a CubeState. The format is
// taken from opts; Validate re-runs the structural audit on the result.
func Deserialize(data string, opts SerializeOptions) *DeserializeResult {
	result := &DeserializeResult{}

	var (
		state CubeState
		err   error
	)
	switch opts.Format {
	case FormatJSON, "":
		state, err = deserializeJSON(data)
	case FormatCompact:
		state, err = deserializeCompact(data)
	case FormatBase64:
		raw, decErr := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
		if decErr != nil {
			return result.fail("base64 decode: %v", decErr)
		}
		state, err = deserializeJSON(string(raw))
	default:
		return result.fail("unsupported format %q", string(opts.Format))
	}
	if err != nil {
		return result.fail("%v", err)
	}

	if opts.Validate {
		report := ValidateState(state)
		result.Warnings = append(result.Warnings, report.Warnings...)
		if !report.Valid {
			result.Errors = append(result.Errors, report.Errors...)
			result.Success = false
			return result
		}
	}

	result.State = state
	result.Success = true
	return result
}

func deserializeJSON(data string) (CubeState, error) {
	var wire stateJSON
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return CubeState{}, newCorruptionError("parse_failed", "json unmarshal: %v", err)
	}
	if len(wire.Faces) != 6 {
		return CubeState{}, newCorruptionError("invalid_face_count", "expected 6 faces, got %d", len(wire.Faces))
	}

	faces := make([]FaceState, 0, 6)
	for i, fw := range wire.Faces {
		face, err := ParseFace(fw.Face)
		if err != nil {
			return CubeState{}, newCorruptionError("invalid_face_type", "face %d: %v", i, err)
		}
		if len(fw.Colors) != 9 {
			return CubeState{}, newCorruptionError("invalid_color_count", "face %s: expected 9 colors, got %d", face, len(fw.Colors))
		}
		colors := make([]Color, 9)
		for j, cs := range fw.Colors {
			c, err := ParseColor(cs)
			if err != nil {
				return CubeState{}, newCorruptionError("invalid_color", "face %s sticker %d: %v", face, j, err)
			}
			colors[j] = c
		}
		faces = append(faces, FaceState{Face: face, Colors: colors, Rotation: fw.Rotation})
	}

	history := make([]Move, 0, len(wire.MoveHistory))
	for i, mw := range wire.MoveHistory {
		face, err := ParseFace(mw.Face)
		if err != nil {
			return CubeState{}, newCorruptionError("invalid_move", "history move %d: %v", i, err)
		}
		turn := Turn(mw.Turn)
		if !turn.Valid() {
			return CubeState{}, newCorruptionError("invalid_move", "history move %d: bad turn %d", i, mw.Turn)
		}
		history = append(history, Move{
			Face:     face,
			Turn:     turn,
			Time:     time.UnixMilli(mw.Time),
			Duration: time.Duration(mw.DurationMs) * time.Millisecond,
		})
	}

	return NewState(faces, history, time.UnixMilli(wire.Timestamp))
}

func deserializeCompact(data string) (CubeState, error) {
	parts := strings.Split(strings.TrimSpace(data), ":")
	if len(parts) != 4 {
		return CubeState{}, newCorruptionError("parse_failed", "compact form needs 4 sections, got %d", len(parts))
	}

	faceParts := strings.Split(parts[0], "|")
	if len(faceParts) != 6 {
		return CubeState{}, newCorruptionError("invalid_face_count", "expected 6 face sections, got %d", len(faceParts))
	}
	rotParts := strings.Split(parts[1], ",")
	if len(rotParts) != 6 {
		return CubeState{}, newCorruptionError("parse_failed", "expected 6 rotations, got %d", len(rotParts))
	}
	if len(parts[2]) != 2 {
		return CubeState{}, newCorruptionError("parse_failed", "expected 2 flag bits, got %q", parts[2])
	}

	faces := make([]FaceState, 0, 6)
	for i, f := range faceOrder {
		if len(faceParts[i]) != 9 {
			return CubeState{}, newCorruptionError("invalid_color_count", "face %s: expected 9 color chars, got %d", f, len(faceParts[i]))
		}
		colors := make([]Color, 9)
		for j := 0; j < 9; j++ {
			c, err := ParseColor(faceParts[i][j : j+1])
			if err != nil {
				return CubeState{}, newCorruptionError("invalid_color", "face %s sticker %d: %v", f, j, err)
			}
			colors[j] = c
		}
		rot, err := strconv.ParseFloat(rotParts[i], 64)
		if err != nil {
			return CubeState{}, newCorruptionError("parse_failed", "face %s rotation: %v", f, err)
		}
		faces = append(faces, FaceState{Face: f, Colors: colors, Rotation: rot})
	}

	millis, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return CubeState{}, newCorruptionError("parse_failed", "timestamp: %v", err)
	}

	state, err := NewState(faces, nil, time.UnixMilli(millis))
	if err != nil {
		return CubeState{}, err
	}
	// The compact form drops history, so the scrambled flag survives via
	// its bit rather than being derived.
	state.Scrambled = parts[2][0] == '1'
	return state, nil
}

// ExportToFile writes a state to path in the requested format. CSV and
// text are export-only formats; JSON exports pretty-printed with history.
func ExportToFile(state CubeState, path string, format Format) error {
	opts := SerializeOptions{Format: format, Pretty: true, IncludeHistory: true}
	out, err := Serialize(state, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("cubekit: writing %s: %w", path, err)
	}
	return nil
}

// ShareFormatVersion is the current shareable-configuration version.
const ShareFormatVersion = "1.0"

// ShareMetadata annotates a shared configuration.
type ShareMetadata struct {
	Source      string   `json:"source"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ShareableConfiguration wraps a serialized state with a version stamp and
// a rolling-hash checksum for tamper/corruption detection in transit.
type ShareableConfiguration struct {
	Version   string          `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Checksum  uint32          `json:"checksum"`
	Metadata  ShareMetadata   `json:"metadata"`
	State     json.RawMessage `json:"state"`
}

// CreateShareableConfiguration serializes the state and wraps it in a
// versioned, checksummed envelope suitable for sharing.
func CreateShareableConfiguration(state CubeState, meta ShareMetadata) (string, error) {
	stateJS, err := serializeJSON(state, SerializeOptions{Format: FormatJSON, IncludeHistory: true})
	if err != nil {
		return "", err
	}
	if meta.Source == "" {
		meta.Source = "cubekit"
	}
	envelope := ShareableConfiguration{
		Version:   ShareFormatVersion,
		Timestamp: time.Now().UnixMilli(),
		Checksum:  RollingChecksum(stateJS),
		Metadata:  meta,
		State:     json.RawMessage(stateJS),
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", newCorruptionError("marshal_failed", "envelope marshal: %v", err)
	}
	return string(data), nil
}

// ImportShareableConfiguration unpacks an envelope. A checksum mismatch is
// a hard STATE_CORRUPTION failure; a version difference only warns, since
// the single supported version is still parseable.
func ImportShareableConfiguration(data string) *DeserializeResult {
	result := &DeserializeResult{}

	var envelope ShareableConfiguration
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		return result.fail("envelope unmarshal: %v", err)
	}
	if envelope.State == nil {
		return result.fail("envelope carries no state")
	}

	if got := RollingChecksum(string(envelope.State)); got != envelope.Checksum {
		return result.fail("checksum mismatch: expected %d, computed %d", envelope.Checksum, got)
	}
	if envelope.Version != ShareFormatVersion {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("version %q differs from supported %q", envelope.Version, ShareFormatVersion))
	}

	inner := Deserialize(string(envelope.State), SerializeOptions{Format: FormatJSON, Validate: true})
	result.Errors = append(result.Errors, inner.Errors...)
	result.Warnings = append(result.Warnings, inner.Warnings...)
	result.State = inner.State
	result.Success = inner.Success && len(result.Errors) == 0
	return result
}
