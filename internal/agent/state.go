package agent

import (
	"time"

	"memory-agent/internal/model"
)

// TurnState is the mutable state of one orchestration run. It is owned by
// that run and never shared.
type TurnState struct {
	Messages      []model.Message
	CurrentInput  string
	NeedsMemory   bool
	SearchQueries []string
	MemoryHits    []string
	// HitIDs holds the store id of each entry in MemoryHits, index for index.
	HitIDs     []string
	ErrorCount int
	LastError  string
}

// NewTurnState seeds a state with the user's message.
func NewTurnState(input string, at time.Time) *TurnState {
	return &TurnState{
		Messages:     []model.Message{{Role: model.RoleUser, Content: input, Timestamp: at}},
		CurrentInput: input,
	}
}

func (s *TurnState) Append(role model.Role, content string, at time.Time) {
	s.Messages = append(s.Messages, model.Message{Role: role, Content: content, Timestamp: at})
}

// RecordError counts one failed step.
func (s *TurnState) RecordError(err error) {
	s.ErrorCount++
	s.LastError = err.Error()
}

func (s *TurnState) AddHit(id, content string) {
	s.HitIDs = append(s.HitIDs, id)
	s.MemoryHits = append(s.MemoryHits, content)
}

// Reply is the content of the last message.
func (s *TurnState) Reply() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Content
}
