package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfigNotFound indicates the declared config path does not exist.
var ErrConfigNotFound = errors.New("flag config file not found")

// ParseError indicates the config document could not be read as structured
// data at all (malformed YAML/JSON, or a non-mapping top level).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FlagProblem is one validation failure attributed to a named flag.
type FlagProblem struct {
	Flag    string
	Message string
}

// ValidationError aggregates every flag entry that violated the config
// invariants, so a single run reports all offending flags at once.
type ValidationError struct {
	Path     string
	Problems []FlagProblem
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s:", e.Path)
	for _, p := range e.Problems {
		fmt.Fprintf(&b, "\n  %s: %s", p.Flag, p.Message)
	}
	return b.String()
}
