package cubekit

import (
	"fmt"
	"math"
	"time"
)

// Deep structural and content auditing of a CubeState, independent of how
// the state was produced. Nothing here mutates; the results feed the
// StateManager's recovery path.

// Corruption codes produced by DetectCorruption.
const (
	CorruptionNullFaces         = "NULL_FACES"
	CorruptionInvalidFaceCount  = "INVALID_FACE_COUNT"
	CorruptionNullFace          = "NULL_FACE"
	CorruptionInvalidFaceType   = "INVALID_FACE_TYPE"
	CorruptionNullColors        = "NULL_COLORS"
	CorruptionInvalidColorCount = "INVALID_COLOR_COUNT"
	CorruptionInvalidColor      = "INVALID_COLOR"
	CorruptionDuplicateFaces    = "DUPLICATE_FACES"
	CorruptionMissingFaces      = "MISSING_FACES"
	CorruptionWrongColorCount   = "WRONG_COLOR_COUNT"
)

// CorruptionError describes one concrete defect found in a state.
// FaceIndex and Position are -1 when not applicable.
type CorruptionError struct {
	Code      string
	Message   string
	FaceIndex int
	Position  int
}

func (e CorruptionError) Error() string {
	return fmt.Sprintf("cubekit: %s: %s", e.Code, e.Message)
}

// ValidationReport aggregates the outcome of ValidateState. Warnings are
// advisory (stale or future timestamps) and never make a state invalid.
type ValidationReport struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Timestamp freshness bounds for soft warnings.
const (
	clockSkewTolerance = time.Second
	staleStateAge      = time.Hour
)

// ValidateState runs the full structural, color-distribution, per-face and
// history audit and returns an aggregated report.
func ValidateState(state CubeState) ValidationReport {
	report := ValidationReport{Valid: true}
	fail := func(format string, args ...interface{}) {
		report.Valid = false
		report.Errors = append(report.Errors, fmt.Sprintf(format, args...))
	}
	warn := func(format string, args ...interface{}) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(format, args...))
	}

	for _, defect := range DetectCorruption(state) {
		fail("%s", defect.Message)
	}

	// Color distribution across the whole cube. Only meaningful when the
	// structure itself held up.
	if report.Valid {
		counts := map[Color]int{}
		for _, fs := range state.Faces {
			for _, c := range fs.Colors {
				counts[c]++
			}
		}
		for c := White; c <= Orange; c++ {
			if counts[c] != 9 {
				fail("color %s appears %d times, expected 9", c, counts[c])
			}
		}
	}

	// Per-face display rotation must at least be a finite number.
	for i, fs := range state.Faces {
		if math.IsNaN(fs.Rotation) || math.IsInf(fs.Rotation, 0) {
			fail("face %d (%s) has non-finite rotation", i, fs.Face)
		}
	}

	// History timestamps must be monotonically non-decreasing.
	for i := 1; i < len(state.MoveHistory); i++ {
		prev, cur := state.MoveHistory[i-1], state.MoveHistory[i]
		if prev.Time.IsZero() || cur.Time.IsZero() {
			continue
		}
		if cur.Time.Before(prev.Time) {
			fail("move history not chronological: move %d (%s) precedes move %d (%s)",
				i, cur.Notation(), i-1, prev.Notation())
		}
	}

	// Soft freshness warnings.
	if !state.Timestamp.IsZero() {
		now := time.Now()
		if state.Timestamp.After(now.Add(clockSkewTolerance)) {
			warn("state timestamp is %v in the future", state.Timestamp.Sub(now))
		}
		if age := now.Sub(state.Timestamp); age > staleStateAge {
			warn("state is %v old", age)
		}
	}

	return report
}

// DetectCorruption enumerates concrete structural defects as typed errors.
// A structurally sound state returns an empty slice.
func DetectCorruption(state CubeState) []CorruptionError {
	var defects []CorruptionError
	add := func(code string, faceIdx, pos int, format string, args ...interface{}) {
		defects = append(defects, CorruptionError{
			Code:      code,
			Message:   fmt.Sprintf(format, args...),
			FaceIndex: faceIdx,
			Position:  pos,
		})
	}

	if state.Faces == nil {
		add(CorruptionNullFaces, -1, -1, "faces array is nil")
		return defects
	}
	if len(state.Faces) != 6 {
		add(CorruptionInvalidFaceCount, -1, -1, "expected 6 faces, got %d", len(state.Faces))
	}

	seen := map[Face]int{}
	for i, fs := range state.Faces {
		if !fs.Face.Valid() {
			add(CorruptionInvalidFaceType, i, -1, "face %d has invalid type %q", i, string(fs.Face))
		} else {
			seen[fs.Face]++
		}

		if fs.Colors == nil {
			add(CorruptionNullColors, i, -1, "face %d (%s) has nil colors", i, fs.Face)
			continue
		}
		if len(fs.Colors) != 9 {
			add(CorruptionInvalidColorCount, i, -1, "face %d (%s) has %d colors, expected 9", i, fs.Face, len(fs.Colors))
		}
		for pos, c := range fs.Colors {
			if !c.Valid() {
				add(CorruptionInvalidColor, i, pos, "face %d (%s) sticker %d has invalid color %d", i, fs.Face, pos, byte(c))
			}
		}
	}

	for face, count := range seen {
		if count > 1 {
			add(CorruptionDuplicateFaces, -1, -1, "face %s appears %d times", face, count)
		}
	}
	if len(state.Faces) == 6 {
		for _, face := range faceOrder {
			if seen[face] == 0 {
				add(CorruptionMissingFaces, -1, -1, "face %s is missing", face)
			}
		}
	}

	return defects
}
