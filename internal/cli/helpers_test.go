package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/roach88/anicheck/internal/store"
)

const testCorpus = `[
  {"file_name": "[Group] Show - 01.mkv", "anime_title": "Show", "episode_number": "01"},
  {"file_name": "broken.mkv", "anime_title": "Broken"},
  {"id": 3}
]`

// showPasses parses the first fixture correctly and fails on broken.mkv.
const showPasses = `
- file_name: "[Group] Show - 01.mkv"
  elements:
    - {category: anime_title, value: Show}
    - {category: episode_number, value: "01"}
- file_name: broken.mkv
  failed: true
`

// brokenPasses is the reverse of showPasses.
const brokenPasses = `
- file_name: "[Group] Show - 01.mkv"
  elements:
    - {category: anime_title, value: Show}
    - {category: episode_number, value: "1"}
- file_name: broken.mkv
  elements:
    - {category: anime_title, value: Broken}
`

type testEnv struct {
	t      *testing.T
	fs     afero.Fs
	opts   *RootOptions
	dbPath string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// newTestEnv sets up an in-memory workspace with the corpus at its default
// location and anicheck.yaml pointing at a replay engine.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("test", 0o755))
	require.NoError(t, afero.WriteFile(fs, "test/data.json", []byte(testCorpus), 0o644))
	require.NoError(t, afero.WriteFile(fs, "replay.yaml", []byte(showPasses), 0o644))
	require.NoError(t, afero.WriteFile(fs, "anicheck.yaml", []byte("engine:\n  replay: replay.yaml\n"), 0o644))

	return &testEnv{
		t:  t,
		fs: fs,
		opts: &RootOptions{
			Fs:          fs,
			IDGenerator: store.NewFixedGenerator("run-1", "run-2", "run-3"),
			Clock:       clockwork.NewFakeClockAt(time.Date(2026, 10, 19, 12, 1, 0, 0, time.UTC)),
		},
		dbPath: filepath.Join(t.TempDir(), "runs.db"),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
}

func (e *testEnv) write(path, content string) {
	e.t.Helper()
	require.NoError(e.t, afero.WriteFile(e.fs, path, []byte(content), 0o644))
}

func (e *testEnv) read(path string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.fs, path)
	require.NoError(e.t, err)
	return string(data)
}

// execute runs the CLI with args. Output buffers are reset first.
func (e *testEnv) execute(args ...string) error {
	e.out.Reset()
	e.errOut.Reset()

	cmd := NewRootCommandWithOptions(e.opts)
	cmd.SetOut(e.out)
	cmd.SetErr(e.errOut)
	cmd.SetArgs(args)
	return cmd.Execute()
}
