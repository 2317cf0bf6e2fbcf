package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"memory-agent/internal/memory"
	"memory-agent/internal/model"
)

// respond persists the user's turn, generates the reply, then persists the
// reply. A generation failure returns a plain error so the driver appends
// the apology, which is never stored.
func (o *Orchestrator) respond(ctx context.Context, r *run) error {
	prompt := buildResponderPrompt(r.state, r.history.Turns)

	var errs []error
	userAt := o.now().Truncate(time.Microsecond)
	userStored := true
	if err := o.persist(ctx, r.userID, model.RoleUser, r.state.CurrentInput, userAt); err != nil {
		userStored = false
		errs = append(errs, fmt.Errorf("store user turn: %w", err))
	}

	reply, err := o.lang.Generate(ctx, prompt, r.history.Turns)
	if err != nil {
		errs = append(errs, fmt.Errorf("generate reply: %w", err))
		return errors.Join(errs...)
	}

	// Stores keep microseconds; the reply must sort after the question it answers.
	replyAt := o.now().Truncate(time.Microsecond)
	if !replyAt.After(userAt) {
		replyAt = userAt.Add(time.Microsecond)
	}
	r.state.Append(model.RoleAssistant, reply, replyAt)

	// Without the question on record the reply would show up unprompted in history.
	if userStored {
		if err := o.persist(ctx, r.userID, model.RoleAssistant, reply, replyAt); err != nil {
			errs = append(errs, fmt.Errorf("store reply: %w", err))
		}
	}

	if len(errs) > 0 {
		return degraded(errors.Join(errs...))
	}
	return nil
}

func (o *Orchestrator) persist(ctx context.Context, userID string, role model.Role, content string, at time.Time) error {
	id, err := o.store.Upsert(ctx, userID, memory.Record{Content: content, Role: role, Timestamp: at})
	if err != nil {
		return err
	}
	o.l.Debugf(ctx, "%s: stored %s turn %s", LogPrefixRespond, role, id)
	return nil
}
