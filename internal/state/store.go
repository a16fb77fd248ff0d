package state

import (
	"context"
	"errors"
)

// ErrSessionNotFound is returned by Store.Get for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// Store persists session state. Get is called fresh before every dispatch;
// Save is called exactly once per command whose result reports a mutation.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}
