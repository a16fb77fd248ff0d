package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/config"
	"wyrmgate/internal/handlers"
	"wyrmgate/internal/state"
)

const demoSession = "demo"

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	d, store, err := buildDispatcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := seedSession(ctx, store); err != nil {
		return err
	}

	// Fire-and-forget submissions at mixed priorities. The LOW narration
	// queues first but drains last.
	if err := d.Submit(command.NewSay(demoSession, handlers.Narrator,
		"A cold wind sweeps the barrow.", command.WithPriority(command.PriorityLow))); err != nil {
		return err
	}
	if err := d.Submit(command.NewStrike(demoSession, "aela", "wight",
		command.WithPriority(command.PriorityHigh))); err != nil {
		return err
	}
	if err := d.Submit(command.NewGiveItem(demoSession, "aela", "barrow-key", 1, 1)); err != nil {
		return err
	}
	if err := d.WaitForCompletion(); err != nil {
		return fmt.Errorf("drain failed: %w", err)
	}

	// Synchronous path: the caller needs the payload.
	payload, err := d.Execute(ctx, command.NewAdvanceQuest(demoSession, "clear-the-barrow", 1))
	if err != nil {
		return err
	}
	logger.Info("quest advanced", zap.Any("progress", payload))

	final, err := store.Get(ctx, demoSession)
	if err != nil {
		return err
	}
	logger.Info("demo complete",
		zap.Int64("revision", final.Revision),
		zap.Int("journal_entries", len(final.Journal)),
		zap.String("threat", final.Derived.ThreatLevel),
		zap.Any("metrics", d.Metrics()))
	return nil
}

func seedSession(ctx context.Context, store state.Store) error {
	session := state.NewSession(demoSession)
	session.Actors["aela"] = &state.Actor{Name: "aela", HP: 24, MaxHP: 24}
	session.Actors["wight"] = &state.Actor{Name: "wight", HP: 12, MaxHP: 12}
	session.Quests["clear-the-barrow"] = &state.Quest{Name: "clear-the-barrow", Stages: 3}
	return store.Save(ctx, session)
}
