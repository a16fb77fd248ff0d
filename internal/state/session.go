// Package state holds the shared mutable session object and the stores
// that persist it. Only handlers mutate a Session, and only while actively
// dispatching; the dispatcher fetches a fresh copy before every dispatch
// and saves it at most once per command.
package state

import "time"

// Item is a stack of identical objects in an actor's inventory.
type Item struct {
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	Quantity int    `json:"quantity"`
}

// Actor is a player character or NPC participating in the session.
type Actor struct {
	Name       string   `json:"name"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"max_hp"`
	Inventory  []Item   `json:"inventory,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
	Defeated   bool     `json:"defeated,omitempty"`
}

// Quest tracks progress through a fixed number of stages.
type Quest struct {
	Name     string `json:"name"`
	Stage    int    `json:"stage"`
	Stages   int    `json:"stages"`
	Complete bool   `json:"complete,omitempty"`
}

// JournalEntry is one line of session history.
type JournalEntry struct {
	At    time.Time `json:"at"`
	Actor string    `json:"actor,omitempty"`
	Text  string    `json:"text"`
}

// Derived holds fields rebuilt from raw state rather than written directly.
// Handlers request a rebuild via the result's Recompute flag.
type Derived struct {
	Encumbrance   map[string]int `json:"encumbrance,omitempty"`
	PartyStrength int            `json:"party_strength"`
	ThreatLevel   string         `json:"threat_level,omitempty"`
}

// Session is the single shared mutable object for one ongoing interaction.
type Session struct {
	ID        string            `json:"id"`
	Actors    map[string]*Actor `json:"actors"`
	Quests    map[string]*Quest `json:"quests"`
	Journal   []JournalEntry    `json:"journal,omitempty"`
	Derived   Derived           `json:"derived"`
	Revision  int64             `json:"revision"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Actors: make(map[string]*Actor),
		Quests: make(map[string]*Quest),
	}
}

// Actor looks up an actor by name.
func (s *Session) Actor(name string) (*Actor, bool) {
	a, ok := s.Actors[name]
	return a, ok
}

// Quest looks up a quest by name.
func (s *Session) Quest(name string) (*Quest, bool) {
	q, ok := s.Quests[name]
	return q, ok
}

// AppendJournal records a history line.
func (s *Session) AppendJournal(at time.Time, actor, text string) JournalEntry {
	entry := JournalEntry{At: at, Actor: actor, Text: text}
	s.Journal = append(s.Journal, entry)
	return entry
}

// Clone returns a deep copy. Stores hand out clones so that every dispatch
// operates on a fresh fetch, and the notify handler snapshots state for the
// transport without racing later mutations.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		ID:        s.ID,
		Actors:    make(map[string]*Actor, len(s.Actors)),
		Quests:    make(map[string]*Quest, len(s.Quests)),
		Revision:  s.Revision,
		UpdatedAt: s.UpdatedAt,
	}
	for name, a := range s.Actors {
		cp := *a
		cp.Inventory = append([]Item(nil), a.Inventory...)
		cp.Conditions = append([]string(nil), a.Conditions...)
		out.Actors[name] = &cp
	}
	for name, q := range s.Quests {
		cp := *q
		out.Quests[name] = &cp
	}
	out.Journal = append([]JournalEntry(nil), s.Journal...)
	out.Derived = Derived{
		PartyStrength: s.Derived.PartyStrength,
		ThreatLevel:   s.Derived.ThreatLevel,
	}
	if s.Derived.Encumbrance != nil {
		out.Derived.Encumbrance = make(map[string]int, len(s.Derived.Encumbrance))
		for k, v := range s.Derived.Encumbrance {
			out.Derived.Encumbrance[k] = v
		}
	}
	return out
}
