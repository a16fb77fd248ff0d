package derive

import (
	"testing"

	"wyrmgate/internal/state"
)

func session(actors ...*state.Actor) *state.Session {
	s := state.NewSession("s1")
	for _, a := range actors {
		s.Actors[a.Name] = a
	}
	return s
}

func TestRebuildEncumbranceAndStrength(t *testing.T) {
	s := session(
		&state.Actor{
			Name: "aela", HP: 20, MaxHP: 24,
			Inventory: []state.Item{
				{Name: "rope", Weight: 2, Quantity: 3},
				{Name: "sword", Weight: 5, Quantity: 1},
			},
		},
		&state.Actor{Name: "brom", HP: 10, MaxHP: 18, Defeated: true},
	)

	if err := NewRebuilder(nil).Rebuild(s); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if got := s.Derived.Encumbrance["aela"]; got != 11 {
		t.Fatalf("expected encumbrance 11, got %d", got)
	}
	if got := s.Derived.Encumbrance["brom"]; got != 0 {
		t.Fatalf("expected encumbrance 0, got %d", got)
	}
	// Defeated actors do not contribute to party strength.
	if s.Derived.PartyStrength != 20 {
		t.Fatalf("expected strength 20, got %d", s.Derived.PartyStrength)
	}
}

func TestRebuildThreatLevels(t *testing.T) {
	cases := []struct {
		name string
		hp   int
		want string
	}{
		{"full health", 24, ThreatCalm},
		{"above sixty percent", 15, ThreatCalm},
		{"below sixty percent", 14, ThreatTense},
		{"below quarter", 5, ThreatDire},
		{"zero", 0, ThreatDire},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := session(&state.Actor{Name: "aela", HP: tc.hp, MaxHP: 24})
			if err := NewRebuilder(nil).Rebuild(s); err != nil {
				t.Fatalf("rebuild: %v", err)
			}
			if s.Derived.ThreatLevel != tc.want {
				t.Fatalf("hp %d: expected %s, got %s", tc.hp, tc.want, s.Derived.ThreatLevel)
			}
		})
	}
}

func TestRebuildEmptySession(t *testing.T) {
	s := session()
	if err := NewRebuilder(nil).Rebuild(s); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if s.Derived.ThreatLevel != ThreatCalm {
		t.Fatalf("empty session should be calm, got %s", s.Derived.ThreatLevel)
	}
	if s.Derived.PartyStrength != 0 {
		t.Fatalf("expected strength 0, got %d", s.Derived.PartyStrength)
	}
}
