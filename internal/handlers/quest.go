package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wyrmgate/internal/command"
	"wyrmgate/internal/handler"
	"wyrmgate/internal/state"
)

// QuestProgress is the payload produced by quest advancement.
type QuestProgress struct {
	Quest    string `json:"quest"`
	Stage    int    `json:"stage"`
	Stages   int    `json:"stages"`
	Complete bool   `json:"complete"`
}

// Quest advances quests through their staged progression.
type Quest struct {
	log       *zap.Logger
	supported handler.KindSet
}

// NewQuest creates the quest handler.
func NewQuest(log *zap.Logger) *Quest {
	if log == nil {
		log = zap.NewNop()
	}
	return &Quest{
		log:       log,
		supported: handler.Kinds(command.KindAdvanceQuest),
	}
}

// CanHandle reports membership in the declared supported set.
func (q *Quest) CanHandle(cmd command.Command) bool {
	return q.supported.Contains(cmd.Kind())
}

// Handle advances the quest one stage. Stages must be claimed in order; a
// completed quest cannot advance further.
func (q *Quest) Handle(ctx context.Context, cmd command.Command, st *state.Session) (*command.Result, error) {
	adv, ok := cmd.(command.AdvanceQuest)
	if !ok {
		return nil, fmt.Errorf("%w: quest got %s", handler.ErrUnsupportedCommand, cmd.Kind())
	}

	quest, ok := st.Quest(adv.Quest)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuest, adv.Quest)
	}
	if quest.Complete {
		return nil, fmt.Errorf("%w: %s", ErrQuestComplete, adv.Quest)
	}
	if adv.Stage != quest.Stage+1 {
		return nil, fmt.Errorf("%w: %s is at stage %d, cannot jump to %d",
			ErrStageOutOfOrder, adv.Quest, quest.Stage, adv.Stage)
	}

	quest.Stage = adv.Stage
	if quest.Stage >= quest.Stages {
		quest.Complete = true
		st.AppendJournal(time.Now(), Narrator,
			fmt.Sprintf("quest %q complete", quest.Name))
	}

	q.log.Debug("quest advanced",
		zap.String("session", st.ID),
		zap.String("quest", adv.Quest),
		zap.Int("stage", quest.Stage),
		zap.Bool("complete", quest.Complete))

	res := &command.Result{
		Payload: QuestProgress{
			Quest:    adv.Quest,
			Stage:    quest.Stage,
			Stages:   quest.Stages,
			Complete: quest.Complete,
		},
		Mutated: true,
	}
	if quest.Complete {
		res.AddCommand(command.NewNotifySession(st.ID, "quest",
			command.WithPriority(command.PriorityLow)))
	}
	return res, nil
}
