package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/anicheck/internal/store"
)

func TestHistoryRequiresDatabase(t *testing.T) {
	env := newTestEnv(t)

	err := env.execute("history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no history database")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistoryEmpty(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.execute("history", "--db", env.dbPath))
	assert.Equal(t, "No runs recorded.\n", env.out.String())
}

func TestHistoryListsNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.execute("--db", env.dbPath, "--label", "first"))
	env.write("test/data.json", "[]")
	require.NoError(t, env.execute("--db", env.dbPath, "--label", "second"))

	require.NoError(t, env.execute("history", "--db", env.dbPath))
	out := env.out.String()
	lines := bytes.Split(bytes.TrimSpace(env.out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3, out)
	assert.Contains(t, string(lines[0]), "SUCCESS RATE")
	assert.Contains(t, string(lines[1]), "run-2")
	assert.Contains(t, string(lines[1]), "N/A (no tests)")
	assert.Contains(t, string(lines[2]), "run-1")
	assert.Contains(t, string(lines[2]), "50.00%")

	require.NoError(t, env.execute("history", "--db", env.dbPath, "--limit", "1"))
	lines = bytes.Split(bytes.TrimSpace(env.out.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
}

func TestHistoryJSON(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.execute("--db", env.dbPath, "--label", "nightly"))
	require.NoError(t, env.execute("history", "--db", env.dbPath, "--format", "json"))

	var resp struct {
		Status string             `json:"status"`
		Data   []store.RunSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-1", resp.Data[0].ID)
	assert.Equal(t, "nightly", resp.Data[0].Label)
	assert.Equal(t, "test/data.json", resp.Data[0].Corpus)
	assert.Equal(t, "replay:replay.yaml", resp.Data[0].Engine)
	assert.Equal(t, 1, resp.Data[0].Passed)
	assert.Equal(t, 1, resp.Data[0].Failed)
}

func TestHistoryUnknownRun(t *testing.T) {
	env := newTestEnv(t)

	err := env.execute("history", "--db", env.dbPath, "run-404")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrRunNotFound)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistoryCSV(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.execute("--db", env.dbPath, "--label", "nightly"))

	require.NoError(t, env.execute("history", "--db", env.dbPath, "--format", "csv"))
	lines := strings.Split(strings.TrimSpace(env.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,seq,label,corpus,engine,created_at,passed,failed", lines[0])
	assert.Equal(t, "run-1,1,nightly,test/data.json,replay:replay.yaml,2026-10-19T12:01:00Z,1,1", lines[1])

	require.NoError(t, env.execute("history", "--db", env.dbPath, "--format", "csv", "latest"))
	assert.Equal(t, "file_name,errors\nbroken.mkv,Failed to parse\n", env.out.String())
}
