package handlers

import "errors"

// Domain errors surfaced from Handle when a command cannot be satisfied.
// They abort the command before any state is persisted.
var (
	ErrUnknownActor         = errors.New("unknown actor")
	ErrUnknownTarget        = errors.New("unknown target")
	ErrTargetDefeated       = errors.New("target already defeated")
	ErrUnknownItem          = errors.New("item not in inventory")
	ErrInsufficientQuantity = errors.New("insufficient item quantity")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrUnknownQuest         = errors.New("unknown quest")
	ErrQuestComplete        = errors.New("quest already complete")
	ErrStageOutOfOrder      = errors.New("quest stage out of order")
	ErrEmptyMessage         = errors.New("message text required")
)
