package engine

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/roach88/anicheck/internal/category"
)

// Command runs an external extraction program once per filename.
//
// The filename, followed by a newline, is written to the program's stdin in
// the codec's encoding. A zero exit status means the filename was parsed and
// stdout holds "key<TAB>value" lines in the same encoding. Any other exit
// status is a parse failure for that filename only.
type Command struct {
	path   string
	args   []string
	codec  Codec
	logger *slog.Logger

	current Elements
}

// NewCommand resolves argv[0] on PATH and returns an engine that runs it.
func NewCommand(argv []string, codec Codec, logger *slog.Logger) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("engine command is empty")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("engine command not found: %w", err)
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Command{
		path:   path,
		args:   append([]string(nil), argv[1:]...),
		codec:  codec,
		logger: logger,
	}, nil
}

// String describes the command for logs and run history.
func (c *Command) String() string {
	return strings.Join(append([]string{c.path}, c.args...), " ")
}

// Parse runs the program for filename.
func (c *Command) Parse(filename string) bool {
	c.current = nil

	input, err := c.codec.Encode(filename + "\n")
	if err != nil {
		c.logger.Debug("cannot encode filename for engine", "file_name", filename, "error", err)
		return false
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(c.path, c.args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Debug("engine did not parse filename",
			"file_name", filename,
			"error", err,
			"stderr", strings.TrimSpace(stderr.String()),
		)
		return false
	}

	text, err := c.codec.Decode(stdout.Bytes())
	if err != nil {
		c.logger.Debug("cannot decode engine output", "file_name", filename, "error", err)
		return false
	}

	c.current = ParseElements(text, c.logger)
	return true
}

// Get implements Querier.
func (c *Command) Get(cat category.Category) string {
	return c.current.Get(cat)
}

// GetAll implements Querier.
func (c *Command) GetAll(cat category.Category) []string {
	return c.current.GetAll(cat)
}
