package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubekit/cubekit"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "cubekit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp())
	return db
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := openTestDB(t)

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	require.NoError(t, db.MigrateUp(), "re-running migrations must be a no-op")
}

func TestSaveAndLoadState(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	state, _, err := cubekit.ScrambledState(10, 5)
	require.NoError(t, err)

	id, err := repo.Save("practice", state)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := repo.Load("practice")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(state))
	assert.Len(t, loaded.MoveHistory, 10)
}

func TestSaveReplacesExistingName(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	_, err := repo.Save("current", cubekit.NewSolvedState())
	require.NoError(t, err)

	scrambled, _, err := cubekit.ScrambledState(8, 1)
	require.NoError(t, err)
	_, err = repo.Save("current", scrambled)
	require.NoError(t, err)

	states, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, states, 1, "same name must replace, not duplicate")

	loaded, err := repo.Load("current")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(scrambled))
}

func TestSavedRowMetadata(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	_, err := repo.Save("solved", cubekit.NewSolvedState())
	require.NoError(t, err)

	row, err := repo.GetByName("solved")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.IsSolved)
	assert.Zero(t, row.MoveCount)
	assert.Equal(t, cubekit.RollingChecksum(row.Payload), row.Checksum)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestLoadMissingStateFails(t *testing.T) {
	db := openTestDB(t)
	_, err := NewStateRepository(db).Load("nope")
	assert.Error(t, err)
}

func TestLoadDetectsTamperedPayload(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	_, err := repo.Save("current", cubekit.NewSolvedState())
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE saved_states SET payload = replace(payload, '"W"', '"G"') WHERE name = 'current'`)
	require.NoError(t, err)

	_, err = repo.Load("current")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestDeleteState(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	_, err := repo.Save("gone", cubekit.NewSolvedState())
	require.NoError(t, err)
	require.NoError(t, repo.Delete("gone"))

	row, err := repo.GetByName("gone")
	require.NoError(t, err)
	assert.Nil(t, row)

	assert.Error(t, repo.Delete("gone"), "deleting a missing name reports it")
}

func TestMoveLogRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	state, moves, err := cubekit.ScrambledState(6, 9)
	require.NoError(t, err)

	id, err := repo.Save("logged", state)
	require.NoError(t, err)

	logRepo := NewMoveLogRepository(db)
	restored, err := logRepo.Moves(id)
	require.NoError(t, err)
	require.Len(t, restored, len(moves))
	assert.Equal(t, cubekit.FormatMoves(moves), cubekit.FormatMoves(restored))
}

func TestDeleteCascadesToMoveLog(t *testing.T) {
	db := openTestDB(t)
	repo := NewStateRepository(db)

	state, _, err := cubekit.ScrambledState(5, 2)
	require.NoError(t, err)
	id, err := repo.Save("cascade", state)
	require.NoError(t, err)
	require.NoError(t, repo.Delete("cascade"))

	logged, err := NewMoveLogRepository(db).ListForState(id)
	require.NoError(t, err)
	assert.Empty(t, logged)
}
