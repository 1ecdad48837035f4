package engine

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/roach88/anicheck/internal/category"
)

// Replay answers from outputs recorded ahead of time. Filenames without a
// recording, or recorded as failed, do not parse.
type Replay struct {
	outputs map[string]Elements
	failed  map[string]bool

	current Elements
}

// ReplayEntry is one recorded engine output in a replay file.
type ReplayEntry struct {
	FileName string          `yaml:"file_name"`
	Failed   bool            `yaml:"failed,omitempty"`
	Elements []ReplayElement `yaml:"elements,omitempty"`
}

// ReplayElement is one recorded field.
type ReplayElement struct {
	Category string `yaml:"category"`
	Value    string `yaml:"value"`
}

// NewReplay returns a replay engine over outputs. Filenames listed in failed
// report a parse failure.
func NewReplay(outputs map[string]Elements, failed ...string) *Replay {
	r := &Replay{
		outputs: make(map[string]Elements, len(outputs)),
		failed:  make(map[string]bool, len(failed)),
	}
	for name, els := range outputs {
		r.outputs[name] = els
	}
	for _, name := range failed {
		r.failed[name] = true
	}
	return r
}

// LoadReplay reads a YAML list of ReplayEntry from path. Unknown fields and
// unknown categories are rejected.
func LoadReplay(fs afero.Fs, path string) (*Replay, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replay file: %w", err)
	}
	return DecodeReplay(bytes.NewReader(data))
}

// DecodeReplay decodes replay entries from r.
func DecodeReplay(r io.Reader) (*Replay, error) {
	var entries []ReplayEntry
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse replay YAML: %w", err)
	}

	rp := NewReplay(nil)
	for i, e := range entries {
		if e.FileName == "" {
			return nil, fmt.Errorf("replay[%d]: file_name is required", i)
		}
		if e.Failed {
			rp.failed[e.FileName] = true
			continue
		}
		els := make(Elements, 0, len(e.Elements))
		for j, el := range e.Elements {
			c := category.Resolve(el.Category)
			if c == category.Unknown {
				return nil, fmt.Errorf("replay[%d].elements[%d]: unknown category %q", i, j, el.Category)
			}
			els = append(els, Element{Category: c, Value: el.Value})
		}
		rp.outputs[e.FileName] = els
	}
	return rp, nil
}

// Parse selects the recorded output for filename.
func (r *Replay) Parse(filename string) bool {
	r.current = nil
	if r.failed[filename] {
		return false
	}
	els, ok := r.outputs[filename]
	if !ok {
		return false
	}
	r.current = els
	return true
}

// Get implements Querier.
func (r *Replay) Get(c category.Category) string {
	return r.current.Get(c)
}

// GetAll implements Querier.
func (r *Replay) GetAll(c category.Category) []string {
	return r.current.GetAll(c)
}
