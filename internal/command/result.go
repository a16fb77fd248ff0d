package command

// Result is the outcome of handling exactly one command. It is transient:
// the caller that initiated the dispatch (worker loop or synchronous
// executor) consumes the flags and follow-ups and discards it.
//
// Payload, Mutated and Recompute are fixed at construction by the handler;
// AddCommand is the only mutator and appends to the follow-up list.
type Result struct {
	// Payload is an optional typed value returned to synchronous callers.
	Payload any

	// Mutated reports that the handler wrote to session state; it triggers
	// exactly one persistence call for this command.
	Mutated bool

	// Recompute requests a derived-state rebuild before persistence.
	Recompute bool

	followUps []Command
}

// AddCommand appends a follow-up command. Follow-ups are dispatched in
// append order, strictly after this command's own handling and persistence
// complete.
func (r *Result) AddCommand(cmd Command) {
	r.followUps = append(r.followUps, cmd)
}

// FollowUps returns the accumulated follow-up commands in append order.
func (r *Result) FollowUps() []Command {
	return r.followUps
}
