package handlers

import (
	"context"
	"errors"
	"testing"

	"wyrmgate/internal/command"
	"wyrmgate/internal/state"
)

func TestInventoryCanHandle(t *testing.T) {
	h := NewInventory(nil)
	if !h.CanHandle(command.NewGiveItem("s1", "aela", "rope", 2, 1)) {
		t.Fatalf("expected inventory to handle give_item")
	}
	if !h.CanHandle(command.NewTakeItem("s1", "aela", "rope", 1)) {
		t.Fatalf("expected inventory to handle take_item")
	}
	if h.CanHandle(command.NewAdvanceQuest("s1", "q", 1)) {
		t.Fatalf("expected inventory to reject advance_quest")
	}
}

func TestInventoryGiveNewItem(t *testing.T) {
	h := NewInventory(nil)
	st := testSession()

	res, err := h.Handle(context.Background(), command.NewGiveItem("s1", "aela", "rope", 2, 3), st)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if !res.Mutated || !res.Recompute {
		t.Fatalf("expected mutated+recompute")
	}

	inv := st.Actors["aela"].Inventory
	if len(inv) != 1 || inv[0] != (state.Item{Name: "rope", Weight: 2, Quantity: 3}) {
		t.Fatalf("unexpected inventory: %+v", inv)
	}
	if count := res.Payload.(ItemCount); count.Quantity != 3 {
		t.Fatalf("expected payload quantity 3, got %d", count.Quantity)
	}
}

func TestInventoryGiveStacks(t *testing.T) {
	h := NewInventory(nil)
	st := testSession()
	st.Actors["aela"].Inventory = []state.Item{{Name: "rope", Weight: 2, Quantity: 1}}

	res, err := h.Handle(context.Background(), command.NewGiveItem("s1", "aela", "rope", 2, 2), st)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	inv := st.Actors["aela"].Inventory
	if len(inv) != 1 || inv[0].Quantity != 3 {
		t.Fatalf("expected stacked quantity 3, got %+v", inv)
	}
	if count := res.Payload.(ItemCount); count.Quantity != 3 {
		t.Fatalf("expected payload quantity 3, got %d", count.Quantity)
	}
}

func TestInventoryTake(t *testing.T) {
	h := NewInventory(nil)
	st := testSession()
	st.Actors["aela"].Inventory = []state.Item{{Name: "rope", Weight: 2, Quantity: 3}}

	res, err := h.Handle(context.Background(), command.NewTakeItem("s1", "aela", "rope", 2), st)
	if err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if st.Actors["aela"].Inventory[0].Quantity != 1 {
		t.Fatalf("expected 1 rope left, got %+v", st.Actors["aela"].Inventory)
	}
	if count := res.Payload.(ItemCount); count.Quantity != 1 {
		t.Fatalf("expected payload quantity 1, got %d", count.Quantity)
	}
}

func TestInventoryTakeRemovesEmptyStack(t *testing.T) {
	h := NewInventory(nil)
	st := testSession()
	st.Actors["aela"].Inventory = []state.Item{{Name: "rope", Weight: 2, Quantity: 2}}

	if _, err := h.Handle(context.Background(), command.NewTakeItem("s1", "aela", "rope", 2), st); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(st.Actors["aela"].Inventory) != 0 {
		t.Fatalf("expected empty stack to be removed, got %+v", st.Actors["aela"].Inventory)
	}
}

func TestInventoryDomainErrors(t *testing.T) {
	h := NewInventory(nil)
	st := testSession()
	st.Actors["aela"].Inventory = []state.Item{{Name: "rope", Weight: 2, Quantity: 1}}
	ctx := context.Background()

	if _, err := h.Handle(ctx, command.NewGiveItem("s1", "ghost", "rope", 2, 1), st); !errors.Is(err, ErrUnknownActor) {
		t.Fatalf("expected ErrUnknownActor, got %v", err)
	}
	if _, err := h.Handle(ctx, command.NewGiveItem("s1", "aela", "rope", 2, 0), st); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := h.Handle(ctx, command.NewTakeItem("s1", "aela", "lantern", 1), st); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
	if _, err := h.Handle(ctx, command.NewTakeItem("s1", "aela", "rope", 5), st); !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("expected ErrInsufficientQuantity, got %v", err)
	}

	// Failed takes must not change the stack.
	if st.Actors["aela"].Inventory[0].Quantity != 1 {
		t.Fatalf("failed command mutated inventory: %+v", st.Actors["aela"].Inventory)
	}
}
