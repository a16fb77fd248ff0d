// Package handler defines the contract mutation logic implements and the
// name-keyed registry the dispatcher resolves handlers from.
package handler

import (
	"context"

	"wyrmgate/internal/command"
	"wyrmgate/internal/state"
)

// Handler implements mutation logic for one or more command kinds. A handler
// is stateless with respect to command history; domain services it needs are
// supplied at construction.
//
// Handle is the sole mutation entry point for its command kinds: it reads and
// writes the session state directly and returns a result describing what
// happened. On domain failure it returns an error and no result, so
// "completed, nothing changed" stays distinguishable from "could not
// complete".
type Handler interface {
	// CanHandle reports whether cmd's kind is in the declared supported set.
	// The dispatcher checks it before every invocation; a false from a
	// resolved handler is a wiring mistake, not a runtime condition.
	CanHandle(cmd command.Command) bool

	Handle(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error)
}

// KindSet is a declared supported-variant set.
type KindSet map[command.Kind]struct{}

// Kinds builds a KindSet.
func Kinds(kinds ...command.Kind) KindSet {
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}

// Contains reports membership.
func (s KindSet) Contains(k command.Kind) bool {
	_, ok := s[k]
	return ok
}
