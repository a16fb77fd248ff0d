package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/state"
)

// ItemCount is the payload produced by inventory mutations.
type ItemCount struct {
	Actor    string `json:"actor"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Inventory mutates actor inventories. One handler instance serves both the
// give and take kinds.
type Inventory struct {
	log       *zap.Logger
	supported handler.KindSet
}

// NewInventory creates the inventory handler.
func NewInventory(log *zap.Logger) *Inventory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Inventory{
		log:       log,
		supported: handler.Kinds(command.KindGiveItem, command.KindTakeItem),
	}
}

// CanHandle reports membership in the declared supported set.
func (i *Inventory) CanHandle(cmd command.Command) bool {
	return i.supported.Contains(cmd.Kind())
}

// Handle applies the inventory mutation and requests an encumbrance rebuild.
func (i *Inventory) Handle(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error) {
	switch c := cmd.(type) {
	case command.GiveItem:
		return i.give(c, st)
	case command.TakeItem:
		return i.take(c, st)
	default:
		return nil, fmt.Errorf("%w: inventory got %s", handler.ErrUnsupportedCommand, cmd.Kind())
	}
}

func (i *Inventory) give(cmd command.GiveItem, st *state.Session) (*command.Result, error) {
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, cmd.Quantity)
	}
	actor, ok := st.Actor(cmd.Actor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActor, cmd.Actor)
	}

	qty := cmd.Quantity
	found := false
	for idx := range actor.Inventory {
		if actor.Inventory[idx].Name == cmd.Item {
			actor.Inventory[idx].Quantity += cmd.Quantity
			qty = actor.Inventory[idx].Quantity
			found = true
			break
		}
	}
	if !found {
		actor.Inventory = append(actor.Inventory, state.Item{
			Name:     cmd.Item,
			Weight:   cmd.Weight,
			Quantity: cmd.Quantity,
		})
	}

	i.log.Debug("item given",
		zap.String("session", st.ID),
		zap.String("actor", cmd.Actor),
		zap.String("item", cmd.Item),
		zap.Int("quantity", qty))

	return &command.Result{
		Payload:   ItemCount{Actor: cmd.Actor, Item: cmd.Item, Quantity: qty},
		Mutated:   true,
		Recompute: true,
	}, nil
}

func (i *Inventory) take(cmd command.TakeItem, st *state.Session) (*command.Result, error) {
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, cmd.Quantity)
	}
	actor, ok := st.Actor(cmd.Actor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActor, cmd.Actor)
	}

	for idx := range actor.Inventory {
		if actor.Inventory[idx].Name != cmd.Item {
			continue
		}
		if actor.Inventory[idx].Quantity < cmd.Quantity {
			return nil, fmt.Errorf("%w: %s has %d of %s, need %d",
				ErrInsufficientQuantity, cmd.Actor, actor.Inventory[idx].Quantity, cmd.Item, cmd.Quantity)
		}
		actor.Inventory[idx].Quantity -= cmd.Quantity
		qty := actor.Inventory[idx].Quantity
		if qty == 0 {
			actor.Inventory = append(actor.Inventory[:idx], actor.Inventory[idx+1:]...)
		}

		i.log.Debug("item taken",
			zap.String("session", st.ID),
			zap.String("actor", cmd.Actor),
			zap.String("item", cmd.Item),
			zap.Int("quantity", qty))

		return &command.Result{
			Payload:   ItemCount{Actor: cmd.Actor, Item: cmd.Item, Quantity: qty},
			Mutated:   true,
			Recompute: true,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownItem, cmd.Item)
}
