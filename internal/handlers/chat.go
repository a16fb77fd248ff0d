// Package handlers provides the built-in handler set: chat, combat,
// inventory, quest progression and session notification. Each handler owns
// the writes for its command kinds and declares exactly which kinds it
// accepts.
package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/state"
)

// Narrator is the reserved actor name for game-master narration; it does not
// need to exist in the session's actor map.
const Narrator = "narrator"

// Chat appends utterances to the session journal.
type Chat struct {
	log       *zap.Logger
	supported handler.KindSet
}

// NewChat creates the chat handler.
func NewChat(log *zap.Logger) *Chat {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chat{
		log:       log,
		supported: handler.Kinds(command.KindSay),
	}
}

// CanHandle reports membership in the declared supported set.
func (c *Chat) CanHandle(cmd command.Command) bool {
	return c.supported.Contains(cmd.Kind())
}

// Handle records the utterance and schedules a notification follow-up.
func (c *Chat) Handle(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error) {
	say, ok := cmd.(command.Say)
	if !ok {
		return nil, fmt.Errorf("%w: chat got %s", handler.ErrUnsupportedCommand, cmd.Kind())
	}
	if say.Text == "" {
		return nil, ErrEmptyMessage
	}
	if say.Actor != Narrator {
		if _, ok := st.Actor(say.Actor); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownActor, say.Actor)
		}
	}

	entry := st.AppendJournal(time.Now(), say.Actor, say.Text)
	c.log.Debug("journal entry recorded",
		zap.String("session", st.ID),
		zap.String("actor", say.Actor))

	res := &command.Result{Payload: entry, Mutated: true}
	res.AddCommand(command.NewNotifySession(st.ID, "journal",
		command.WithPriority(command.PriorityLow)))
	return res, nil
}
