package fixture

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesRecordsInOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	corpus := `[
  {"file_name": "a.mkv", "anime_title": "A"},
  {"file_name": "b.mkv", "episode_number": ["01", "02"]}
]`
	require.NoError(t, fs.MkdirAll("test", 0o755))
	require.NoError(t, afero.WriteFile(fs, "test/data.json", []byte(corpus), 0o644))

	c, err := NewLoader(fs, nil).Load("test/data.json")
	require.NoError(t, err)
	require.Len(t, c.Records, 2)
	assert.False(t, c.Truncated)
	assert.Equal(t, "test/data.json", c.Path)

	v, _ := c.Records[0].Get("file_name")
	assert.Equal(t, "a.mkv", v.Text)
	v, _ = c.Records[1].Get("episode_number")
	assert.Equal(t, `["01", "02"]`, v.Text)
}

func TestLoadMalformedIsNotFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bad.json", []byte(`[{"file_name":"a.mkv"`), 0o644))

	c, err := NewLoader(fs, nil).Load("bad.json")
	require.NoError(t, err)
	assert.True(t, c.Truncated)
	assert.Len(t, c.Records, 1)
}

func TestLoadEmptyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "empty.json", nil, 0o644))

	c, err := NewLoader(fs, nil).Load("empty.json")
	require.NoError(t, err)
	assert.Empty(t, c.Records)
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	_, err := NewLoader(afero.NewMemMapFs(), nil).Load("missing.json")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrCorpusUnreadable))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "missing.json", loadErr.Path)
	assert.Contains(t, err.Error(), "failed to open missing.json")
}
