// Package config loads the harness configuration file.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file at
// this path is not an error.
const DefaultPath = "anicheck.yaml"

// DefaultCorpus is the fixed corpus location used when nothing overrides it.
const DefaultCorpus = "test/data.json"

//go:embed schema.cue
var schemaCUE string

// Config is the harness configuration.
type Config struct {
	// Corpus is the path of the fixture corpus.
	Corpus string `yaml:"corpus"`

	Engine EngineConfig `yaml:"engine"`

	// History is an optional SQLite database recording every run.
	History string `yaml:"history,omitempty"`

	// Label tags runs stored in History.
	Label string `yaml:"label,omitempty"`
}

// EngineConfig selects the extraction engine. Exactly one of Command and
// Replay is set.
type EngineConfig struct {
	// Command is the program and arguments run once per filename.
	Command []string `yaml:"command,omitempty"`

	// Replay is a YAML file of recorded engine outputs.
	Replay string `yaml:"replay,omitempty"`

	// Encoding is the engine's text encoding. Defaults to utf-8.
	Encoding string `yaml:"encoding,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Corpus: DefaultCorpus}
}

// Load reads the config file at path. Unknown fields are rejected. Fields
// absent from the file keep their defaults. The result is not validated;
// call Validate after applying overrides.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields Default.
func LoadOptional(fs afero.Fs, path string) (*Config, error) {
	cfg, err := Load(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the configuration against the schema and the rules the
// schema cannot express. It is CheckSchema followed by CheckEngine.
func (c *Config) Validate() error {
	if err := c.CheckSchema(); err != nil {
		return err
	}
	return c.CheckEngine()
}

// CheckSchema validates field types and enumerations against #Config. An
// unset engine passes.
func (c *Config) CheckSchema() error {
	if err := validateSchema(c.document()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// CheckEngine requires exactly one of engine.command and engine.replay.
func (c *Config) CheckEngine() error {
	hasCommand := len(c.Engine.Command) > 0
	hasReplay := c.Engine.Replay != ""
	switch {
	case hasCommand && hasReplay:
		return errors.New("invalid config: engine.command and engine.replay are mutually exclusive")
	case !hasCommand && !hasReplay:
		return errors.New("invalid config: engine.command or engine.replay is required")
	}
	return nil
}

// document builds the value checked against #Config. Empty optional fields
// are left out so they read as absent rather than as empty strings.
func (c *Config) document() map[string]any {
	engine := map[string]any{}
	if len(c.Engine.Command) > 0 {
		engine["command"] = c.Engine.Command
	}
	if c.Engine.Replay != "" {
		engine["replay"] = c.Engine.Replay
	}
	if c.Engine.Encoding != "" {
		engine["encoding"] = c.Engine.Encoding
	}

	doc := map[string]any{
		"corpus": c.Corpus,
		"engine": engine,
	}
	if c.History != "" {
		doc["history"] = c.History
	}
	if c.Label != "" {
		doc["label"] = c.Label
	}
	return doc
}

func validateSchema(doc map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	v := def.Unify(ctx.Encode(doc))
	return v.Validate(cue.Concrete(true))
}
