package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/state"
)

// Transport delivers session snapshots to a real-time channel. The transport
// itself (websocket, SSE, ...) lives outside the core.
type Transport interface {
	Publish(ctx context.Context, reason string, snapshot *state.Session) error
}

// Notify forwards state snapshots to the transport. It is an ordinary
// handler: the follow-up cascade is the core's only notification primitive.
type Notify struct {
	log       *zap.Logger
	transport Transport
	supported handler.KindSet
}

// NewNotify creates the notify handler with an injected transport.
func NewNotify(log *zap.Logger, transport Transport) *Notify {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notify{
		log:       log,
		transport: transport,
		supported: handler.Kinds(command.KindNotifySession),
	}
}

// CanHandle reports membership in the declared supported set.
func (n *Notify) CanHandle(cmd command.Command) bool {
	return n.supported.Contains(cmd.Kind())
}

// Handle publishes a snapshot. It never mutates state.
func (n *Notify) Handle(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error) {
	notify, ok := cmd.(command.NotifySession)
	if !ok {
		return nil, fmt.Errorf("%w: notify got %s", handler.ErrUnsupportedCommand, cmd.Kind())
	}

	if err := n.transport.Publish(ctx, notify.Reason, st.Clone()); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return &command.Result{}, nil
}

// LogTransport publishes snapshots to the logger. It is the default
// transport for deployments without a real-time channel attached.
type LogTransport struct {
	log *zap.Logger
}

// NewLogTransport creates a LogTransport.
func NewLogTransport(log *zap.Logger) *LogTransport {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogTransport{log: log}
}

// Publish implements Transport.
func (t *LogTransport) Publish(ctx context.Context, reason string, snapshot *state.Session) error {
	t.log.Info("session snapshot",
		zap.String("session", snapshot.ID),
		zap.String("reason", reason),
		zap.Int64("revision", snapshot.Revision),
		zap.Int("journal_entries", len(snapshot.Journal)))
	return nil
}
