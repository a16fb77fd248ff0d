package command

import "fmt"

// Priority defines the scheduling class for queued commands.
// Lower values dequeue first.
type Priority int

const (
	// PriorityHigh is for interactive player actions that must not wait
	// behind background work.
	PriorityHigh Priority = 0

	// PriorityNormal is the default for tool calls and most commands.
	PriorityNormal Priority = 1

	// PriorityLow is for background effects such as notifications.
	PriorityLow Priority = 2
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Valid reports whether p is one of the declared priority classes.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}
