package usecase

import (
	"context"
	"fmt"
	"strings"

	"memory-agent/internal/chat"
	"memory-agent/internal/memory"
	"memory-agent/internal/model"
)

func (uc *implUseCase) ClearUserMemory(ctx context.Context, sc model.Scope) error {
	if strings.TrimSpace(sc.UserID) == "" {
		return chat.ErrEmptyUserID
	}

	if err := uc.store.DeleteNamespace(ctx, sc.UserID); err != nil {
		uc.l.Errorf(ctx, "%s: user=%s: %v", LogPrefixClearUserMemory, sc.UserID, err)
		return fmt.Errorf("clear memories: %w", err)
	}

	uc.l.Infof(ctx, "%s: cleared memories of user=%s", LogPrefixClearUserMemory, sc.UserID)
	return nil
}

func (uc *implUseCase) History(ctx context.Context, sc model.Scope, input chat.HistoryInput) (chat.HistoryOutput, error) {
	if strings.TrimSpace(sc.UserID) == "" {
		return chat.HistoryOutput{}, chat.ErrEmptyUserID
	}
	if input.Limit < 0 {
		return chat.HistoryOutput{}, chat.ErrInvalidLimit
	}

	limit := input.Limit
	if limit == 0 {
		limit = uc.historyLimit
	}

	h, err := memory.AssembleHistory(ctx, uc.store, sc.UserID, limit)
	if err != nil {
		uc.l.Errorf(ctx, "%s: user=%s: %v", LogPrefixHistory, sc.UserID, err)
		return chat.HistoryOutput{}, err
	}
	return chat.HistoryOutput{Turns: h.Turns}, nil
}
