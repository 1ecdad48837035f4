package engine

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/anicheck/internal/category"
)

const replayYAML = `
- file_name: "[Group] Show - 01.mkv"
  elements:
    - {category: anime_title, value: Show}
    - {category: episode_number, value: "01"}
- file_name: broken.mkv
  failed: true
`

func TestLoadReplay(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "results.yaml", []byte(replayYAML), 0o644))

	rp, err := LoadReplay(fs, "results.yaml")
	require.NoError(t, err)

	require.True(t, rp.Parse("[Group] Show - 01.mkv"))
	assert.Equal(t, "Show", rp.Get(category.AnimeTitle))
	assert.Equal(t, []string{"01"}, rp.GetAll(category.EpisodeNumber))

	assert.False(t, rp.Parse("broken.mkv"))
	assert.Equal(t, "", rp.Get(category.AnimeTitle))

	assert.False(t, rp.Parse("never-recorded.mkv"))
}

func TestDecodeReplayRejectsUnknownCategory(t *testing.T) {
	_, err := DecodeReplay(strings.NewReader(`
- file_name: a.mkv
  elements:
    - {category: anime_season, value: "2"}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "anime_season"`)
}

func TestDecodeReplayRejectsUnknownField(t *testing.T) {
	_, err := DecodeReplay(strings.NewReader(`
- file_name: a.mkv
  elemnts: []
`))
	require.Error(t, err)
}

func TestDecodeReplayRequiresFileName(t *testing.T) {
	_, err := DecodeReplay(strings.NewReader(`- failed: true`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_name is required")
}

func TestDecodeReplayEmpty(t *testing.T) {
	rp, err := DecodeReplay(strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, rp.Parse("a.mkv"))
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplay(afero.NewMemMapFs(), "nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read replay file")
}
