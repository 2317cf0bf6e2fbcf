package http

import (
	"strings"

	"memory-agent/internal/chat"
	"memory-agent/internal/model"
)

// --- Request DTOs ---

type chatReq struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	// UseMemory defaults to true when omitted.
	UseMemory *bool `json:"use_memory"`
}

func (r chatReq) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return chat.ErrEmptyUserID
	}
	if strings.TrimSpace(r.Message) == "" {
		return chat.ErrEmptyMessage
	}
	return nil
}

func (r chatReq) toInput() chat.TurnInput {
	useMemory := true
	if r.UseMemory != nil {
		useMemory = *r.UseMemory
	}
	return chat.TurnInput{Message: r.Message, UseMemory: useMemory}
}

type clearReq struct {
	UserID string `json:"user_id"`
}

func (r clearReq) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return chat.ErrEmptyUserID
	}
	return nil
}

type historyReq struct {
	UserID string `form:"user_id"`
	Limit  int    `form:"limit"`
}

func (r historyReq) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return chat.ErrEmptyUserID
	}
	if r.Limit < 0 {
		return chat.ErrInvalidLimit
	}
	return nil
}

// --- Response DTOs ---

type chatResp struct {
	Response         string   `json:"response"`
	UsedMemory       bool     `json:"used_memory"`
	RelevantMemories []string `json:"relevant_memories"`
	SearchQueries    []string `json:"search_queries,omitempty"`
	ErrorCount       int      `json:"error_count"`
	RunID            string   `json:"run_id"`
}

func (h *handler) newChatResp(o chat.TurnOutput) chatResp {
	memories := o.RelevantMemories
	if memories == nil {
		memories = []string{}
	}
	return chatResp{
		Response:         o.Reply,
		UsedMemory:       o.UsedMemory,
		RelevantMemories: memories,
		SearchQueries:    o.SearchQueries,
		ErrorCount:       o.ErrorCount,
		RunID:            o.RunID,
	}
}

type clearResp struct {
	Success bool `json:"success"`
}

type historyResp struct {
	UserID string       `json:"user_id"`
	Turns  []model.Turn `json:"turns"`
	Count  int          `json:"count"`
}

func (h *handler) newHistoryResp(userID string, o chat.HistoryOutput) historyResp {
	turns := o.Turns
	if turns == nil {
		turns = []model.Turn{}
	}
	return historyResp{UserID: userID, Turns: turns, Count: len(turns)}
}
