package service

import (
	"fmt"
	"time"

	"github.com/whisperwall/cli/pkg/api"
	"github.com/whisperwall/cli/pkg/formatter"
	"github.com/whisperwall/cli/pkg/output"
	"github.com/whisperwall/cli/pkg/queries"
	"github.com/whisperwall/cli/pkg/session"
)

// ReactService drives reaction presses
type ReactService struct {
	store *queries.Store
	burst *session.BurstTracker
	sleep func(time.Duration)
}

// NewReactService creates a react service over a data-access store
func NewReactService(store *queries.Store) *ReactService {
	return &ReactService{
		store: store,
		burst: session.NewBurstTracker(),
		sleep: time.Sleep,
	}
}

// React presses a reaction on a secret and renders the settled bar.
// The press bursts briefly; a failed call rolls the bar back to
// exactly its pre-press state and surfaces a notification.
func (rs *ReactService) React(secretID uint64, kind api.ReactionKind) error {
	outcome, err := rs.store.React(secretID, kind)
	if err != nil {
		if outcome != nil && outcome.RolledBack {
			output.PrintError("reaction failed — nothing was changed")
			fmt.Println(formatter.ReactionBar(outcome.View.Counts, outcome.View.Selection, nil))
		}
		return err
	}

	rs.burst.Trigger(kind)
	fmt.Println(formatter.ReactionBar(outcome.View.Counts, outcome.View.Selection, rs.burst.Active))
	rs.sleep(session.BurstDuration)

	if outcome.View.Selection == "" {
		output.PrintInfo("Reaction removed.")
	} else {
		output.PrintSuccess("Reacted with %s.", formatter.ReactionEmoji[kind])
	}
	return nil
}
