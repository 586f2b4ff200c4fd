package cubekit

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// StateManager is the operational facade combining validation, comparison,
// corruption recovery and move execution. It holds no cube state of its
// own; every method takes and returns immutable CubeState values.
type StateManager struct {
	log        *logrus.Logger
	perfBudget time.Duration
}

// NewStateManager creates a state manager.
func NewStateManager(opts ...Option) *StateManager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &StateManager{
		log:        cfg.logger,
		perfBudget: cfg.perfBudget,
	}
}

// StateDifference is one concrete difference between two states.
type StateDifference struct {
	Kind    string // "face_count", "rotation", "sticker"
	Face    Face
	Row     int
	Col     int
	Message string
}

// ComparisonResult reports how two states differ. Similarity is the share
// of matching stickers out of 54.
type ComparisonResult struct {
	Equal       bool
	Differences []StateDifference
	Similarity  float64
}

// CompareStates enumerates the differences between two states: face-count
// mismatches, per-face display-rotation deltas beyond tolerance, and
// per-sticker color mismatches with their row/column position.
func (sm *StateManager) CompareStates(a, b CubeState) ComparisonResult {
	defer sm.trackPerformance("CompareStates", time.Now())

	result := ComparisonResult{}

	if len(a.Faces) != len(b.Faces) {
		result.Differences = append(result.Differences, StateDifference{
			Kind:    "face_count",
			Message: fmt.Sprintf("face count %d vs %d", len(a.Faces), len(b.Faces)),
		})
	}

	matching := 0
	compared := 0
	for _, fa := range a.Faces {
		fb, ok := b.FaceState(fa.Face)
		if !ok {
			continue
		}

		delta := fa.Rotation - fb.Rotation
		if delta < 0 {
			delta = -delta
		}
		if delta > rotationTolerance {
			result.Differences = append(result.Differences, StateDifference{
				Kind:    "rotation",
				Face:    fa.Face,
				Message: fmt.Sprintf("face %s rotation differs by %.4f rad", fa.Face, delta),
			})
		}

		n := len(fa.Colors)
		if len(fb.Colors) < n {
			n = len(fb.Colors)
		}
		for i := 0; i < n; i++ {
			compared++
			if fa.Colors[i] == fb.Colors[i] {
				matching++
				continue
			}
			result.Differences = append(result.Differences, StateDifference{
				Kind: "sticker",
				Face: fa.Face,
				Row:  i / 3,
				Col:  i % 3,
				Message: fmt.Sprintf("face %s sticker (%d,%d): %s vs %s",
					fa.Face, i/3, i%3, fa.Colors[i], fb.Colors[i]),
			})
		}
	}

	result.Similarity = float64(matching) / 54.0
	result.Equal = len(result.Differences) == 0 && compared == 54
	return result
}

// SolvedAnalysis reports per-face solving progress against canonical
// colors. A face counts as completed only when all 9 stickers match.
type SolvedAnalysis struct {
	Solved            bool
	CompletedFaces    []Face
	CorrectPerFace    map[Face]int
	IncorrectStickers int
	SolvedPercentage  float64
}

// AnalyzeSolvedState measures how close a state is to solved.
func (sm *StateManager) AnalyzeSolvedState(state CubeState) SolvedAnalysis {
	defer sm.trackPerformance("AnalyzeSolvedState", time.Now())

	analysis := SolvedAnalysis{CorrectPerFace: make(map[Face]int, 6)}
	totalCorrect := 0
	for _, fs := range state.Faces {
		want := SolvedColor(fs.Face)
		correct := 0
		for _, c := range fs.Colors {
			if c == want {
				correct++
			}
		}
		analysis.CorrectPerFace[fs.Face] = correct
		totalCorrect += correct
		if correct == 9 && len(fs.Colors) == 9 {
			analysis.CompletedFaces = append(analysis.CompletedFaces, fs.Face)
		}
	}
	analysis.IncorrectStickers = 54 - totalCorrect
	analysis.SolvedPercentage = float64(totalCorrect) / 54.0 * 100.0
	analysis.Solved = analysis.IncorrectStickers == 0
	return analysis
}

// RecoveryResult reports the outcome of a corruption recovery attempt.
type RecoveryResult struct {
	Corrupted   bool
	Recovered   bool
	State       CubeState
	Defects     []CorruptionError
	Steps       []string // human-readable record of what was repaired
	Unrecovered []CorruptionError
}

// DetectAndRecover audits the state and attempts a best-effort repair.
// Wrong color distributions and missing/duplicate faces fall back to the
// solved state wholesale; individual invalid stickers are corrected to
// their face's canonical color. Any other defect marks the state
// unrecoverable and the input is returned unchanged.
func (sm *StateManager) DetectAndRecover(state CubeState) RecoveryResult {
	defer sm.trackPerformance("DetectAndRecover", time.Now())

	defects := DetectCorruption(state)
	result := RecoveryResult{
		Corrupted: len(defects) > 0,
		State:     state,
		Defects:   defects,
	}
	if len(defects) == 0 {
		return result
	}

	current := state
	repaired := false
	for _, defect := range defects {
		switch defect.Code {
		case CorruptionWrongColorCount, CorruptionMissingFaces, CorruptionDuplicateFaces,
			CorruptionInvalidFaceCount, CorruptionInvalidColorCount, CorruptionNullColors, CorruptionNullFaces:
			// Structural damage: no per-sticker fix is meaningful.
			current = NewSolvedState()
			repaired = true
			result.Steps = append(result.Steps,
				fmt.Sprintf("%s: reset to solved state", defect.Code))

		case CorruptionInvalidColor:
			if defect.FaceIndex >= 0 && defect.FaceIndex < len(current.Faces) &&
				defect.Position >= 0 && defect.Position < len(current.Faces[defect.FaceIndex].Colors) {
				fixed := current.Clone()
				face := fixed.Faces[defect.FaceIndex].Face
				fixed.Faces[defect.FaceIndex].Colors[defect.Position] = SolvedColor(face)
				fixed.Solved = checkSolved(fixed.Faces)
				current = fixed
				repaired = true
				result.Steps = append(result.Steps,
					fmt.Sprintf("%s: face %s sticker %d reset to canonical %s",
						defect.Code, face, defect.Position, SolvedColor(face)))
			} else {
				result.Unrecovered = append(result.Unrecovered, defect)
			}

		default:
			result.Unrecovered = append(result.Unrecovered, defect)
		}
	}

	if len(result.Unrecovered) > 0 {
		sm.log.WithField("defects", len(result.Unrecovered)).Warn("cube state unrecoverable")
		result.Recovered = false
		result.State = state
		return result
	}

	result.Recovered = repaired
	result.State = current
	for _, step := range result.Steps {
		sm.log.WithField("step", step).Info("cube state recovered")
	}
	return result
}

// ExecuteMove validates and applies one face turn, returning the new state.
// The returned state is committed: a later animation cancellation does not
// roll it back.
func (sm *StateManager) ExecuteMove(state CubeState, face Face, turn Turn, duration time.Duration, ctx AnimationContext) (CubeState, error) {
	defer sm.trackPerformance("ExecuteMove", time.Now())

	if err := ValidateMove(face, turn, ctx); err != nil {
		return CubeState{}, err
	}
	move, err := NewMove(face, turn, duration)
	if err != nil {
		return CubeState{}, err
	}
	next, err := state.ApplyMove(move)
	if err != nil {
		return CubeState{}, err
	}

	sm.log.WithFields(logrus.Fields{
		"move":   move.Notation(),
		"solved": next.Solved,
		"moves":  len(next.MoveHistory),
	}).Debug("move executed")

	return next, nil
}

// IsSolved re-derives the solved flag from sticker content.
func (sm *StateManager) IsSolved(state CubeState) bool {
	return checkSolved(state.Faces)
}

// Checksum computes the non-cryptographic rolling hash over the
// concatenated sticker colors in canonical face order. Collisions are
// acceptable; this is a corruption-detection and memoization key, not a
// security primitive.
func (sm *StateManager) Checksum(state CubeState) uint32 {
	var b strings.Builder
	for _, f := range faceOrder {
		fs, ok := state.FaceState(f)
		if !ok {
			continue
		}
		for _, c := range fs.Colors {
			b.WriteString(c.String())
		}
	}
	return RollingChecksum(b.String())
}

// RollingChecksum is the engine's shared 32-bit rolling hash:
// h = (h<<5) - h + ch, wrapped to 32 bits.
func RollingChecksum(s string) uint32 {
	var h int32
	for _, ch := range []byte(s) {
		h = (h << 5) - h + int32(ch)
	}
	return uint32(h)
}

// Statistics summarizes a state for display and logging.
type Statistics struct {
	MoveCount         int
	SolvedPercentage  float64
	CompletedFaces    int
	IncorrectStickers int
	Age               time.Duration
}

// Statistics computes aggregate state statistics.
func (sm *StateManager) Statistics(state CubeState) Statistics {
	analysis := sm.AnalyzeSolvedState(state)
	return Statistics{
		MoveCount:         len(state.MoveHistory),
		SolvedPercentage:  analysis.SolvedPercentage,
		CompletedFaces:    len(analysis.CompletedFaces),
		IncorrectStickers: analysis.IncorrectStickers,
		Age:               time.Since(state.Timestamp),
	}
}

// trackPerformance logs a warning when an operation exceeds the advisory
// frame budget. It never fails the operation.
func (sm *StateManager) trackPerformance(op string, start time.Time) {
	elapsed := time.Since(start)
	if elapsed > sm.perfBudget {
		sm.log.WithFields(logrus.Fields{
			"operation": op,
			"elapsed":   elapsed,
			"budget":    sm.perfBudget,
		}).Warn("operation exceeded frame budget")
	}
}
