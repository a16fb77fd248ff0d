package handlers

import (
	"context"
	"errors"
	"testing"

	"wyrmgate/internal/command"
	"wyrmgate/internal/state"
)

func testSession() *state.Session {
	s := state.NewSession("s1")
	s.Actors["aela"] = &state.Actor{Name: "aela", HP: 24, MaxHP: 24}
	s.Actors["wight"] = &state.Actor{Name: "wight", HP: 12, MaxHP: 12}
	s.Quests["clear-the-barrow"] = &state.Quest{Name: "clear-the-barrow", Stages: 2}
	return s
}

func TestChatCanHandle(t *testing.T) {
	h := NewChat(nil)
	if !h.CanHandle(command.NewSay("s1", "aela", "hi")) {
		t.Fatalf("expected chat to handle say")
	}
	if h.CanHandle(command.NewStrike("s1", "aela", "wight")) {
		t.Fatalf("expected chat to reject strike")
	}
}

func TestChatAppendsJournal(t *testing.T) {
	h := NewChat(nil)
	st := testSession()

	res, err := h.Handle(context.Background(), command.NewSay("s1", "aela", "onward"), st)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if !res.Mutated {
		t.Fatalf("expected mutated result")
	}
	if res.Recompute {
		t.Fatalf("chat must not request recompute")
	}
	if len(st.Journal) != 1 || st.Journal[0].Actor != "aela" || st.Journal[0].Text != "onward" {
		t.Fatalf("unexpected journal: %+v", st.Journal)
	}

	entry, ok := res.Payload.(state.JournalEntry)
	if !ok {
		t.Fatalf("expected JournalEntry payload, got %T", res.Payload)
	}
	if entry.Text != "onward" {
		t.Fatalf("unexpected payload text %q", entry.Text)
	}
}

func TestChatSchedulesNotification(t *testing.T) {
	h := NewChat(nil)
	st := testSession()

	res, err := h.Handle(context.Background(), command.NewSay("s1", "aela", "onward"), st)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	follows := res.FollowUps()
	if len(follows) != 1 {
		t.Fatalf("expected one follow-up, got %d", len(follows))
	}
	if follows[0].Kind() != command.KindNotifySession {
		t.Fatalf("expected notify follow-up, got %s", follows[0].Kind())
	}
	if follows[0].Priority() != command.PriorityLow {
		t.Fatalf("expected low-priority notification, got %s", follows[0].Priority())
	}
}

func TestChatNarratorNeedsNoActor(t *testing.T) {
	h := NewChat(nil)
	st := testSession()
	if _, err := h.Handle(context.Background(), command.NewSay("s1", Narrator, "the door creaks"), st); err != nil {
		t.Fatalf("narrator say failed: %v", err)
	}
}

func TestChatDomainErrors(t *testing.T) {
	h := NewChat(nil)
	st := testSession()

	_, err := h.Handle(context.Background(), command.NewSay("s1", "ghost", "boo"), st)
	if !errors.Is(err, ErrUnknownActor) {
		t.Fatalf("expected ErrUnknownActor, got %v", err)
	}
	if len(st.Journal) != 0 {
		t.Fatalf("failed say must not leave a journal entry")
	}

	_, err = h.Handle(context.Background(), command.NewSay("s1", "aela", ""), st)
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}
