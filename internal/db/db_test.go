package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	database, err := Open(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'event_ledger'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "event_ledger", name)
}

func TestOpen_FileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.sqlite")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()
}

func TestIsMemory(t *testing.T) {
	assert.True(t, isMemory(":memory:"))
	assert.True(t, isMemory("file::memory:?cache=shared"))
	assert.False(t, isMemory("./ledger.sqlite"))
}
