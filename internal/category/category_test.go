package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownKeys(t *testing.T) {
	tests := map[string]Category{
		"anime_title":      AnimeTitle,
		"episode_number":   EpisodeNumber,
		"release_group":    ReleaseGroup,
		"video_resolution": VideoResolution,
		"anime_year":       AnimeYear,
		"audio_term":       AudioTerm,
		"file_extension":   FileExtension,
		"file_checksum":    FileChecksum,
		"video_term":       VideoTerm,
		"episode_title":    EpisodeTitle,
		"release_version":  ReleaseVersion,
	}
	for key, want := range tests {
		assert.Equal(t, want, Resolve(key), key)
		assert.Equal(t, key, want.Key())
	}
}

func TestResolveUnknownAndReserved(t *testing.T) {
	for _, key := range []string{"file_name", "id", "anime_season", "", "Anime_Title"} {
		assert.Equal(t, Unknown, Resolve(key), key)
	}
	assert.True(t, IsReserved("file_name"))
	assert.True(t, IsReserved("id"))
	assert.False(t, IsReserved("anime_title"))
}

func TestAllRoundTrips(t *testing.T) {
	all := All()
	assert.Len(t, all, 11)
	for _, c := range all {
		assert.Equal(t, c, Resolve(c.Key()))
	}
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", Category(99).String())
}
