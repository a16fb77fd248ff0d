package state

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sampleSession() *Session {
	s := NewSession("s1")
	s.Actors["aela"] = &Actor{
		Name:       "aela",
		HP:         20,
		MaxHP:      24,
		Inventory:  []Item{{Name: "rope", Weight: 2, Quantity: 1}},
		Conditions: []string{"blessed"},
	}
	s.Quests["clear-the-barrow"] = &Quest{Name: "clear-the-barrow", Stage: 1, Stages: 3}
	s.AppendJournal(time.Now(), "aela", "entered the barrow")
	s.Derived = Derived{
		Encumbrance:   map[string]int{"aela": 2},
		PartyStrength: 20,
		ThreatLevel:   "calm",
	}
	return s
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleSession()
	clone := original.Clone()

	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs from original (-want +got):\n%s", diff)
	}

	// Mutations on the clone must not show through.
	clone.Actors["aela"].HP = 1
	clone.Actors["aela"].Inventory[0].Quantity = 99
	clone.Quests["clear-the-barrow"].Stage = 2
	clone.Journal[0].Text = "rewritten"
	clone.Derived.Encumbrance["aela"] = 99

	if original.Actors["aela"].HP != 20 {
		t.Fatalf("actor mutation leaked to original")
	}
	if original.Actors["aela"].Inventory[0].Quantity != 1 {
		t.Fatalf("inventory mutation leaked to original")
	}
	if original.Quests["clear-the-barrow"].Stage != 1 {
		t.Fatalf("quest mutation leaked to original")
	}
	if original.Journal[0].Text != "entered the barrow" {
		t.Fatalf("journal mutation leaked to original")
	}
	if original.Derived.Encumbrance["aela"] != 2 {
		t.Fatalf("derived mutation leaked to original")
	}
}

func TestCloneNil(t *testing.T) {
	var s *Session
	if s.Clone() != nil {
		t.Fatalf("expected nil clone of nil session")
	}
}

func TestLookups(t *testing.T) {
	s := sampleSession()
	if _, ok := s.Actor("aela"); !ok {
		t.Fatalf("expected to find aela")
	}
	if _, ok := s.Actor("ghost"); ok {
		t.Fatalf("did not expect to find ghost")
	}
	if _, ok := s.Quest("clear-the-barrow"); !ok {
		t.Fatalf("expected to find quest")
	}
	if _, ok := s.Quest("missing"); ok {
		t.Fatalf("did not expect to find missing quest")
	}
}
