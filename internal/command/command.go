// Package command defines the closed set of typed intents that mutate
// session state, and the result type their handlers produce.
//
// Commands are immutable after construction: the shared header (id, session,
// priority, timestamp) is system-assigned and never caller-settable, and
// variant fields are plain values copied at construction. Resubmitting a
// command is not deduplicated.
package command

import (
	"time"

	"github.com/google/uuid"
)

// Handler names carried by each variant. Dispatch resolves a live handler
// instance from this tag alone; the variant type is only checked afterwards
// by the handler's own supported set.
const (
	HandlerChat      = "chat"
	HandlerCombat    = "combat"
	HandlerInventory = "inventory"
	HandlerQuest     = "quest"
	HandlerNotify    = "notify"
)

// Kind tags a command variant.
type Kind string

const (
	KindSay           Kind = "say"
	KindStrike        Kind = "strike"
	KindGiveItem      Kind = "give_item"
	KindTakeItem      Kind = "take_item"
	KindAdvanceQuest  Kind = "advance_quest"
	KindNotifySession Kind = "notify_session"
)

// Command is an immutable typed intent to mutate session state.
// The set of implementations is closed: all variants live in this package.
type Command interface {
	ID() string
	SessionID() string
	Priority() Priority
	CreatedAt() time.Time
	Kind() Kind
	HandlerName() string

	sealed()
}

// Option adjusts caller-settable construction parameters.
type Option func(*header)

// WithPriority overrides the default NORMAL priority class.
func WithPriority(p Priority) Option {
	return func(h *header) {
		if p.Valid() {
			h.priority = p
		}
	}
}

// header carries the fields shared by every variant.
type header struct {
	id        string
	sessionID string
	priority  Priority
	createdAt time.Time
}

func newHeader(sessionID string, opts ...Option) header {
	h := header{
		id:        uuid.NewString(),
		sessionID: sessionID,
		priority:  PriorityNormal,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h header) ID() string           { return h.id }
func (h header) SessionID() string    { return h.sessionID }
func (h header) Priority() Priority   { return h.priority }
func (h header) CreatedAt() time.Time { return h.createdAt }
func (h header) sealed()              {}

// Say records an utterance by an actor into the session journal.
type Say struct {
	header
	Actor string
	Text  string
}

// NewSay builds a Say command. Priority defaults to NORMAL.
func NewSay(sessionID, actor, text string, opts ...Option) Say {
	return Say{header: newHeader(sessionID, opts...), Actor: actor, Text: text}
}

func (Say) Kind() Kind          { return KindSay }
func (Say) HandlerName() string { return HandlerChat }

// Strike resolves an attack from one actor against another.
type Strike struct {
	header
	Attacker string
	Target   string
}

// NewStrike builds a Strike command.
func NewStrike(sessionID, attacker, target string, opts ...Option) Strike {
	return Strike{header: newHeader(sessionID, opts...), Attacker: attacker, Target: target}
}

func (Strike) Kind() Kind          { return KindStrike }
func (Strike) HandlerName() string { return HandlerCombat }

// GiveItem adds quantity of an item to an actor's inventory.
type GiveItem struct {
	header
	Actor    string
	Item     string
	Weight   int
	Quantity int
}

// NewGiveItem builds a GiveItem command.
func NewGiveItem(sessionID, actor, item string, weight, quantity int, opts ...Option) GiveItem {
	return GiveItem{
		header:   newHeader(sessionID, opts...),
		Actor:    actor,
		Item:     item,
		Weight:   weight,
		Quantity: quantity,
	}
}

func (GiveItem) Kind() Kind          { return KindGiveItem }
func (GiveItem) HandlerName() string { return HandlerInventory }

// TakeItem removes quantity of an item from an actor's inventory.
type TakeItem struct {
	header
	Actor    string
	Item     string
	Quantity int
}

// NewTakeItem builds a TakeItem command.
func NewTakeItem(sessionID, actor, item string, quantity int, opts ...Option) TakeItem {
	return TakeItem{header: newHeader(sessionID, opts...), Actor: actor, Item: item, Quantity: quantity}
}

func (TakeItem) Kind() Kind          { return KindTakeItem }
func (TakeItem) HandlerName() string { return HandlerInventory }

// AdvanceQuest moves a quest to the given stage.
type AdvanceQuest struct {
	header
	Quest string
	Stage int
}

// NewAdvanceQuest builds an AdvanceQuest command.
func NewAdvanceQuest(sessionID, quest string, stage int, opts ...Option) AdvanceQuest {
	return AdvanceQuest{header: newHeader(sessionID, opts...), Quest: quest, Stage: stage}
}

func (AdvanceQuest) Kind() Kind          { return KindAdvanceQuest }
func (AdvanceQuest) HandlerName() string { return HandlerQuest }

// NotifySession forwards a state snapshot to the real-time transport.
// It is produced as a follow-up by handlers whose mutations observers
// should see; the cascade is the core's only notification primitive.
type NotifySession struct {
	header
	Reason string
}

// NewNotifySession builds a NotifySession command.
func NewNotifySession(sessionID, reason string, opts ...Option) NotifySession {
	return NotifySession{header: newHeader(sessionID, opts...), Reason: reason}
}

func (NotifySession) Kind() Kind          { return KindNotifySession }
func (NotifySession) HandlerName() string { return HandlerNotify }
