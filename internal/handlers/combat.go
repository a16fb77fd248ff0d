package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/state"
)

// Dice is the injected randomness service for combat resolution.
type Dice interface {
	// Roll returns a value in [1, sides].
	Roll(sides int) int
}

// DiceFunc adapts a function to the Dice interface.
type DiceFunc func(sides int) int

// Roll implements Dice.
func (f DiceFunc) Roll(sides int) int { return f(sides) }

// NewDice returns a Dice backed by the given seed.
func NewDice(seed int64) Dice {
	rng := rand.New(rand.NewSource(seed))
	return DiceFunc(func(sides int) int {
		return rng.Intn(sides) + 1
	})
}

// StrikeOutcome is the payload produced by a resolved strike.
type StrikeOutcome struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
	Damage   int    `json:"damage"`
	TargetHP int    `json:"target_hp"`
	Defeated bool   `json:"defeated"`
}

// Combat resolves strikes between actors.
type Combat struct {
	log       *zap.Logger
	dice      Dice
	supported handler.KindSet
}

// NewCombat creates the combat handler with an injected dice roller.
func NewCombat(log *zap.Logger, dice Dice) *Combat {
	if log == nil {
		log = zap.NewNop()
	}
	return &Combat{
		log:       log,
		dice:      dice,
		supported: handler.Kinds(command.KindStrike),
	}
}

// CanHandle reports membership in the declared supported set.
func (c *Combat) CanHandle(cmd command.Command) bool {
	return c.supported.Contains(cmd.Kind())
}

// Handle applies strike damage, marks defeat, and schedules a notification.
func (c *Combat) Handle(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error) {
	strike, ok := cmd.(command.Strike)
	if !ok {
		return nil, fmt.Errorf("%w: combat got %s", handler.ErrUnsupportedCommand, cmd.Kind())
	}

	attacker, ok := st.Actor(strike.Attacker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownActor, strike.Attacker)
	}
	target, ok := st.Actor(strike.Target)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, strike.Target)
	}
	if target.Defeated {
		return nil, fmt.Errorf("%w: %s", ErrTargetDefeated, strike.Target)
	}

	damage := c.dice.Roll(6) + c.dice.Roll(6)
	target.HP -= damage
	if target.HP <= 0 {
		target.HP = 0
		target.Defeated = true
	}

	st.AppendJournal(time.Now(), attacker.Name,
		fmt.Sprintf("strikes %s for %d damage", target.Name, damage))

	c.log.Debug("strike resolved",
		zap.String("session", st.ID),
		zap.String("attacker", strike.Attacker),
		zap.String("target", strike.Target),
		zap.Int("damage", damage),
		zap.Bool("defeated", target.Defeated))

	res := &command.Result{
		Payload: StrikeOutcome{
			Attacker: strike.Attacker,
			Target:   strike.Target,
			Damage:   damage,
			TargetHP: target.HP,
			Defeated: target.Defeated,
		},
		Mutated:   true,
		Recompute: true,
	}
	res.AddCommand(command.NewNotifySession(st.ID, "combat",
		command.WithPriority(command.PriorityLow)))
	return res, nil
}
