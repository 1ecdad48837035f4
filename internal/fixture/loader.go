// Package fixture loads the conformance corpus.
package fixture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/roach88/anicheck/internal/litejson"
)

// ErrCorpusUnreadable is the one fatal condition of a run: the corpus source
// could not be opened or read.
var ErrCorpusUnreadable = errors.New("corpus unreadable")

// LoadError reports which corpus could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrCorpusUnreadable, e.Err}
}

// Corpus is the ordered list of fixture records read from one source.
type Corpus struct {
	Path    string
	Records []*litejson.Record

	// Truncated is set when the source was malformed and only part of it
	// could be parsed.
	Truncated bool
}

// Loader reads corpora from a filesystem.
type Loader struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewLoader returns a loader over fs. A nil fs means the OS filesystem and
// a nil logger discards output.
func NewLoader(fs afero.Fs, logger *slog.Logger) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{fs: fs, logger: logger}
}

// Load reads the whole corpus at path and parses it. The file is closed
// before Load returns. Malformed content is not an error; only a source that
// cannot be opened or read is.
func (l *Loader) Load(path string) (*Corpus, error) {
	data, err := l.read(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	res := litejson.ParseArray(string(data))
	if res.Truncated {
		l.logger.Warn("corpus is malformed, using partial result",
			"path", path,
			"records", len(res.Records),
		)
	}
	l.logger.Debug("corpus loaded", "path", path, "records", len(res.Records))

	return &Corpus{
		Path:      path,
		Records:   res.Records,
		Truncated: res.Truncated,
	}, nil
}

func (l *Loader) read(path string) ([]byte, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
