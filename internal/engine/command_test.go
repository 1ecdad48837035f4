package engine

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/anicheck/internal/category"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// echoEngine answers with the filename as the title and a fixed episode list.
const echoEngine = `read name
case "$name" in
  fail*) echo "cannot parse" >&2; exit 3 ;;
esac
printf 'anime_title\t%s\n' "$name"
printf 'episode_number\t01\nepisode_number\t02\n'
`

func TestCommandParse(t *testing.T) {
	requireShell(t)

	eng, err := NewCommand([]string{"sh", "-c", echoEngine}, Codec{}, nil)
	require.NoError(t, err)

	require.True(t, eng.Parse("[Group] Show - 01.mkv"))
	assert.Equal(t, "[Group] Show - 01.mkv", eng.Get(category.AnimeTitle))
	assert.Equal(t, "01", eng.Get(category.EpisodeNumber))
	assert.Equal(t, []string{"01", "02"}, eng.GetAll(category.EpisodeNumber))
	assert.Equal(t, "", eng.Get(category.ReleaseGroup))
}

func TestCommandNonZeroExitIsParseFailure(t *testing.T) {
	requireShell(t)

	eng, err := NewCommand([]string{"sh", "-c", echoEngine}, Codec{}, nil)
	require.NoError(t, err)

	require.True(t, eng.Parse("ok.mkv"))
	assert.False(t, eng.Parse("fail.mkv"))
	assert.Equal(t, "", eng.Get(category.AnimeTitle))
	assert.Empty(t, eng.GetAll(category.EpisodeNumber))
}

func TestCommandDecodesOutput(t *testing.T) {
	requireShell(t)

	codec, err := NewCodec("latin1")
	require.NoError(t, err)

	// 0351 is é in Latin-1.
	script := `read name; printf 'anime_title\tCaf\351\n'`
	eng, err := NewCommand([]string{"sh", "-c", script}, codec, nil)
	require.NoError(t, err)

	require.True(t, eng.Parse("x.mkv"))
	assert.Equal(t, "Café", eng.Get(category.AnimeTitle))
}

func TestNewCommandErrors(t *testing.T) {
	_, err := NewCommand(nil, Codec{}, nil)
	require.Error(t, err)

	_, err = NewCommand([]string{"definitely-not-an-engine-binary"}, Codec{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine command not found")
}
