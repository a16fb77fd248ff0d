// Package derive rebuilds the computed block of a session from its raw
// fields. It runs when a command's result sets the Recompute flag, always
// before the session is persisted.
package derive

import (
	"go.uber.org/zap"

	"wyrmgate/internal/state"
)

// Threat levels derived from average party health.
const (
	ThreatCalm  = "calm"
	ThreatTense = "tense"
	ThreatDire  = "dire"
)

// Rebuilder recomputes state.Derived.
type Rebuilder struct {
	log *zap.Logger
}

// NewRebuilder creates a Rebuilder.
func NewRebuilder(log *zap.Logger) *Rebuilder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rebuilder{log: log}
}

// Rebuild recomputes encumbrance, party strength and threat level in place.
func (r *Rebuilder) Rebuild(s *state.Session) error {
	encumbrance := make(map[string]int, len(s.Actors))
	strength := 0
	hp, maxHP := 0, 0

	for name, a := range s.Actors {
		load := 0
		for _, item := range a.Inventory {
			load += item.Weight * item.Quantity
		}
		encumbrance[name] = load

		if !a.Defeated {
			strength += a.HP
		}
		hp += a.HP
		maxHP += a.MaxHP
	}

	threat := ThreatCalm
	if maxHP > 0 {
		switch ratio := float64(hp) / float64(maxHP); {
		case ratio < 0.25:
			threat = ThreatDire
		case ratio < 0.6:
			threat = ThreatTense
		}
	}

	s.Derived = state.Derived{
		Encumbrance:   encumbrance,
		PartyStrength: strength,
		ThreatLevel:   threat,
	}

	r.log.Debug("derived state rebuilt",
		zap.String("session", s.ID),
		zap.Int("party_strength", strength),
		zap.String("threat", threat))
	return nil
}
