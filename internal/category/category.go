// Package category maps corpus field keys to the metadata categories an
// extraction engine reports.
package category

// Category identifies a metadata field produced by the extraction engine.
type Category int

const (
	// Unknown is returned for keys with no mapping.
	Unknown Category = iota
	AnimeTitle
	EpisodeNumber
	ReleaseGroup
	VideoResolution
	AnimeYear
	AudioTerm
	FileExtension
	FileChecksum
	VideoTerm
	EpisodeTitle
	ReleaseVersion
)

// Reserved corpus keys. They identify a fixture and are never assertions.
const (
	KeyFileName = "file_name"
	KeyID       = "id"
)

var keys = [...]string{
	Unknown:         "",
	AnimeTitle:      "anime_title",
	EpisodeNumber:   "episode_number",
	ReleaseGroup:    "release_group",
	VideoResolution: "video_resolution",
	AnimeYear:       "anime_year",
	AudioTerm:       "audio_term",
	FileExtension:   "file_extension",
	FileChecksum:    "file_checksum",
	VideoTerm:       "video_term",
	EpisodeTitle:    "episode_title",
	ReleaseVersion:  "release_version",
}

var byKey = func() map[string]Category {
	m := make(map[string]Category, len(keys)-1)
	for c, k := range keys {
		if Category(c) != Unknown {
			m[k] = Category(c)
		}
	}
	return m
}()

// Resolve returns the category for a corpus key, or Unknown.
// Reserved keys resolve to Unknown as well.
func Resolve(key string) Category {
	return byKey[key]
}

// IsReserved reports whether key identifies the fixture rather than
// asserting a field.
func IsReserved(key string) bool {
	return key == KeyFileName || key == KeyID
}

// All returns every known category in declaration order.
func All() []Category {
	out := make([]Category, 0, len(keys)-1)
	for c := AnimeTitle; c <= ReleaseVersion; c++ {
		out = append(out, c)
	}
	return out
}

// Key returns the corpus key for c, or "" for Unknown.
func (c Category) Key() string {
	if c < 0 || int(c) >= len(keys) {
		return ""
	}
	return keys[c]
}

func (c Category) String() string {
	if k := c.Key(); k != "" {
		return k
	}
	return "unknown"
}
