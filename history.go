package cubekit

import (
	"sync"
	"time"
)

// HistoryEntry pairs a cube state with the move that produced it.
type HistoryEntry struct {
	State      CubeState
	Move       *Move // nil for the initial state
	Timestamp  time.Time
	Compressed bool
}

// HistoryManager provides undo/redo stack discipline with bounded memory.
// The undo stack always starts with the initial state as entry 0; the redo
// stack is cleared whenever a new move is executed. All methods are safe
// for concurrent use.
type HistoryManager struct {
	mu sync.Mutex

	undo    []HistoryEntry
	redo    []HistoryEntry
	current HistoryEntry

	maxHistory           int
	maxRedo              int
	compressionThreshold int
}

// NewHistoryManager creates a history manager seeded with the initial state.
func NewHistoryManager(initial CubeState, opts ...Option) *HistoryManager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	entry := HistoryEntry{State: initial, Timestamp: time.Now()}
	return &HistoryManager{
		undo:                 []HistoryEntry{entry},
		current:              entry,
		maxHistory:           cfg.maxHistory,
		maxRedo:              cfg.maxRedo,
		compressionThreshold: cfg.compressionThreshold,
	}
}

// Current returns the current state.
func (h *HistoryManager) Current() CubeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current.State
}

// ExecuteMove records a new accepted move: the redo stack is cleared, the
// new state is pushed onto the undo stack and adopted as current.
func (h *HistoryManager) ExecuteMove(move Move, newState CubeState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.redo = nil
	m := move
	entry := HistoryEntry{State: newState, Move: &m, Timestamp: time.Now()}
	h.undo = append(h.undo, entry)
	h.current = entry

	// Evict oldest beyond the cap, keeping entry 0 semantics: the oldest
	// surviving entry becomes the new baseline.
	if len(h.undo) > h.maxHistory {
		h.undo = h.undo[len(h.undo)-h.maxHistory:]
	}
}

// CanUndo reports whether an undo is possible.
func (h *HistoryManager) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 1
}

// CanRedo reports whether a redo is possible.
func (h *HistoryManager) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// Undo steps back one move. It fails with INVALID_MOVE when only the
// initial state remains. Returns the move that was undone, if any.
func (h *HistoryManager) Undo() (*Move, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) <= 1 {
		return nil, newMoveError("nothing_to_undo", "already at initial state")
	}

	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	h.redo = append(h.redo, top)
	if len(h.redo) > h.maxRedo {
		h.redo = h.redo[len(h.redo)-h.maxRedo:]
	}

	h.current = h.undo[len(h.undo)-1]
	return top.Move, nil
}

// Redo re-applies the most recently undone move. It fails with
// INVALID_MOVE when the redo stack is empty.
func (h *HistoryManager) Redo() (*Move, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return nil, newMoveError("nothing_to_redo", "redo stack is empty")
	}

	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	h.undo = append(h.undo, top)
	if len(h.undo) > h.maxHistory {
		h.undo = h.undo[len(h.undo)-h.maxHistory:]
	}

	h.current = top
	return top.Move, nil
}

// JumpToPosition truncates the undo stack to [0..i] and adopts the state at
// position i. The redo stack is cleared. Fails with INVALID_MOVE when i is
// out of bounds.
func (h *HistoryManager) JumpToPosition(i int) (CubeState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.undo) {
		return CubeState{}, newMoveError("position_out_of_range", "position %d not in [0, %d)", i, len(h.undo))
	}

	h.redo = nil
	h.undo = h.undo[:i+1]
	h.current = h.undo[i]
	return h.current.State, nil
}

// Length returns the undo stack length (including the initial entry).
func (h *HistoryManager) Length() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// Clear resets the manager to a single initial entry holding the given
// state.
func (h *HistoryManager) Clear(initial CubeState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	entry := HistoryEntry{State: initial, Timestamp: time.Now()}
	h.undo = []HistoryEntry{entry}
	h.redo = nil
	h.current = entry
}

// CompressHistory flags all entries except the most recent
// compressionThreshold as compressed. The flag records eligibility only;
// the entries stay resident.
func (h *HistoryManager) CompressHistory() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := len(h.undo) - h.compressionThreshold
	compressed := 0
	for i := 0; i < cutoff; i++ {
		if !h.undo[i].Compressed {
			h.undo[i].Compressed = true
			compressed++
		}
	}
	return compressed
}

// MoveSequence returns the moves (not states) recorded between two undo
// stack positions, in chronological order. end < 0 means "through the top
// of the stack".
func (h *HistoryManager) MoveSequence(start, end int) ([]Move, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if end < 0 {
		end = len(h.undo) - 1
	}
	if start < 0 || start > end || end >= len(h.undo) {
		return nil, newMoveError("position_out_of_range", "range [%d, %d] not in [0, %d)", start, end, len(h.undo))
	}

	var moves []Move
	for i := start; i <= end; i++ {
		if h.undo[i].Move != nil {
			moves = append(moves, *h.undo[i].Move)
		}
	}
	return moves, nil
}

// ValidateHistory checks stack entry integrity. An entry without a state
// or timestamp fails with STATE_CORRUPTION.
func (h *HistoryManager) ValidateHistory() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, entry := range h.undo {
		if entry.State.Faces == nil {
			return newCorruptionError("missing_state", "undo entry %d has no state", i)
		}
		if entry.Timestamp.IsZero() {
			return newCorruptionError("missing_timestamp", "undo entry %d has no timestamp", i)
		}
	}
	for i, entry := range h.redo {
		if entry.State.Faces == nil {
			return newCorruptionError("missing_state", "redo entry %d has no state", i)
		}
		if entry.Timestamp.IsZero() {
			return newCorruptionError("missing_timestamp", "redo entry %d has no timestamp", i)
		}
	}
	return nil
}
