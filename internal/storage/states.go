package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cubekit/cubekit"
)

// SavedState is a persisted cube state row.
type SavedState struct {
	StateID   string
	Name      string
	Format    string
	Payload   string
	Checksum  uint32
	MoveCount int
	IsSolved  bool
	CreatedAt time.Time
}

// StateRepository provides CRUD operations for saved states.
type StateRepository struct {
	db *DB
}

// NewStateRepository creates a new state repository.
func NewStateRepository(db *DB) *StateRepository {
	return &StateRepository{db: db}
}

// Save serializes a state and stores it under the given name, together with
// its move log. An existing state with the same name is replaced.
func (r *StateRepository) Save(name string, state cubekit.CubeState) (string, error) {
	payload, err := cubekit.Serialize(state, cubekit.SerializeOptions{
		Format:         cubekit.FormatJSON,
		IncludeHistory: true,
		Validate:       true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize state: %w", err)
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()
	checksum := cubekit.RollingChecksum(payload)

	err = r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM saved_states WHERE name = ?", name); err != nil {
			return fmt.Errorf("failed to replace existing state: %w", err)
		}

		_, err := tx.Exec(`
			INSERT INTO saved_states (state_id, name, format, payload, checksum, move_count, is_solved, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, name, string(cubekit.FormatJSON), payload, checksum,
			len(state.MoveHistory), boolInt(state.Solved), createdAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to insert state: %w", err)
		}

		return insertMoveLog(tx, id, state.MoveHistory)
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Load retrieves a state by name and deserializes it. The stored checksum
// is verified before parsing.
func (r *StateRepository) Load(name string) (cubekit.CubeState, error) {
	row, err := r.GetByName(name)
	if err != nil {
		return cubekit.CubeState{}, err
	}
	if row == nil {
		return cubekit.CubeState{}, fmt.Errorf("no saved state named %q", name)
	}

	if got := cubekit.RollingChecksum(row.Payload); got != row.Checksum {
		return cubekit.CubeState{}, fmt.Errorf("saved state %q failed checksum verification (stored %d, computed %d)",
			name, row.Checksum, got)
	}

	result := cubekit.Deserialize(row.Payload, cubekit.SerializeOptions{
		Format:   cubekit.Format(row.Format),
		Validate: true,
	})
	if !result.Success {
		return cubekit.CubeState{}, fmt.Errorf("saved state %q is corrupt: %v", name, result.Errors)
	}
	return result.State, nil
}

// GetByName retrieves a saved state row by name.
func (r *StateRepository) GetByName(name string) (*SavedState, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT state_id, name, format, payload, checksum, move_count, is_solved, created_at
		FROM saved_states
		WHERE name = ?
	`, name))
}

// Get retrieves a saved state row by ID.
func (r *StateRepository) Get(stateID string) (*SavedState, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT state_id, name, format, payload, checksum, move_count, is_solved, created_at
		FROM saved_states
		WHERE state_id = ?
	`, stateID))
}

func (r *StateRepository) scanOne(row *sql.Row) (*SavedState, error) {
	var s SavedState
	var createdAtStr string
	var solved int

	err := row.Scan(&s.StateID, &s.Name, &s.Format, &s.Payload, &s.Checksum,
		&s.MoveCount, &solved, &createdAtStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved state: %w", err)
	}

	s.IsSolved = solved != 0
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return &s, nil
}

// List retrieves recent saved states, newest first.
func (r *StateRepository) List(limit int) ([]SavedState, error) {
	rows, err := r.db.Query(`
		SELECT state_id, name, format, payload, checksum, move_count, is_solved, created_at
		FROM saved_states
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved states: %w", err)
	}
	defer rows.Close()

	var states []SavedState
	for rows.Next() {
		var s SavedState
		var createdAtStr string
		var solved int

		err := rows.Scan(&s.StateID, &s.Name, &s.Format, &s.Payload, &s.Checksum,
			&s.MoveCount, &solved, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved state: %w", err)
		}

		s.IsSolved = solved != 0
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		states = append(states, s)
	}

	return states, rows.Err()
}

// Delete deletes a saved state and its move log (cascading).
func (r *StateRepository) Delete(name string) error {
	res, err := r.db.Exec("DELETE FROM saved_states WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete saved state: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no saved state named %q", name)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
