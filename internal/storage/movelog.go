package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cubekit/cubekit"
)

// LoggedMove is a persisted move-log row.
type LoggedMove struct {
	Seq       int
	Face      cubekit.Face
	Turn      cubekit.Turn
	AppliedAt time.Time
	Duration  time.Duration
}

// MoveLogRepository reads move logs for saved states.
type MoveLogRepository struct {
	db *DB
}

// NewMoveLogRepository creates a new move log repository.
func NewMoveLogRepository(db *DB) *MoveLogRepository {
	return &MoveLogRepository{db: db}
}

// insertMoveLog writes the full move history for a state inside an open
// transaction.
func insertMoveLog(tx *sql.Tx, stateID string, moves []cubekit.Move) error {
	stmt, err := tx.Prepare(`
		INSERT INTO move_log (state_id, seq, face, turn, applied_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare move insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range moves {
		_, err := stmt.Exec(stateID, i, string(m.Face), int(m.Turn),
			m.Time.UTC().Format(time.RFC3339Nano), m.Duration.Milliseconds())
		if err != nil {
			return fmt.Errorf("failed to insert move %d: %w", i, err)
		}
	}
	return nil
}

// ListForState retrieves the move log for a saved state in sequence order.
func (r *MoveLogRepository) ListForState(stateID string) ([]LoggedMove, error) {
	rows, err := r.db.Query(`
		SELECT seq, face, turn, applied_at, duration_ms
		FROM move_log
		WHERE state_id = ?
		ORDER BY seq
	`, stateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}
	defer rows.Close()

	var moves []LoggedMove
	for rows.Next() {
		var m LoggedMove
		var appliedAtStr string
		var durationMs int64

		if err := rows.Scan(&m.Seq, &m.Face, &m.Turn, &appliedAtStr, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}

		m.AppliedAt, _ = time.Parse(time.RFC3339Nano, appliedAtStr)
		m.Duration = time.Duration(durationMs) * time.Millisecond
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Moves converts logged rows back into engine moves.
func (r *MoveLogRepository) Moves(stateID string) ([]cubekit.Move, error) {
	logged, err := r.ListForState(stateID)
	if err != nil {
		return nil, err
	}

	moves := make([]cubekit.Move, len(logged))
	for i, lm := range logged {
		moves[i] = cubekit.Move{
			Face:     lm.Face,
			Turn:     lm.Turn,
			Time:     lm.AppliedAt,
			Duration: lm.Duration,
		}
	}
	return moves, nil
}
