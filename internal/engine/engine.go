package engine

import (
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/anicheck/internal/category"
)

// Querier reads the fields of the most recently parsed filename.
type Querier interface {
	// Get returns the first value of c, or "" if there is none.
	Get(c category.Category) string
	// GetAll returns every value of c in the order the engine reported them.
	GetAll(c category.Category) []string
}

// Engine is an extraction engine. After Parse returns false nothing is
// queryable for that filename.
type Engine interface {
	Querier
	Parse(filename string) bool
}

// Element is one extracted field.
type Element struct {
	Category category.Category
	Value    string
}

// Elements is an ordered list of extracted fields. It implements Querier.
type Elements []Element

// Get returns the first value stored under c.
func (e Elements) Get(c category.Category) string {
	for _, el := range e {
		if el.Category == c {
			return el.Value
		}
	}
	return ""
}

// GetAll returns every value stored under c, in order.
func (e Elements) GetAll(c category.Category) []string {
	var out []string
	for _, el := range e {
		if el.Category == c {
			out = append(out, el.Value)
		}
	}
	return out
}

// ParseElements reads "key<TAB>value" lines. Blank lines, lines without a
// tab and keys that do not resolve to a category are skipped.
func ParseElements(text string, logger *slog.Logger) Elements {
	if logger == nil {
		logger = discardLogger()
	}

	var out Elements
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "\t")
		if !ok {
			logger.Debug("skipping engine output line without separator", "line", line)
			continue
		}
		c := category.Resolve(key)
		if c == category.Unknown {
			logger.Debug("skipping unknown engine category", "key", key)
			continue
		}
		out = append(out, Element{Category: c, Value: value})
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
