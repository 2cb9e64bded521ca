package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQL {
	t.Helper()
	db, err := OpenSQL("sqlite", filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLRoundTrip(t *testing.T) {
	db := openTestDB(t)

	value, err := db.Get("vocabulary_mastery")
	require.NoError(t, err)
	assert.Nil(t, value, "absent key reads as nil")

	require.NoError(t, db.Set("vocabulary_mastery", []byte(`[]`)))
	value, err = db.Get("vocabulary_mastery")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value))
}

func TestSQLOverwrite(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("k", []byte("one")))
	require.NoError(t, db.Set("k", []byte("two")))

	value, err := db.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(value))
}

func TestSQLRemove(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Set("k", []byte("v")))
	require.NoError(t, db.Remove("k"))

	value, err := db.Get("k")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestSQLCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := OpenSQL("sqlite", path, "")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set("k", []byte("v")))
}

func TestSQLUnsupportedType(t *testing.T) {
	_, err := OpenSQL("mongodb", "", "")
	assert.Error(t, err)
}
