package chat

import "memory-agent/internal/model"

type TurnInput struct {
	Message   string
	UseMemory bool
}

type TurnOutput struct {
	Reply string
	// UsedMemory reports whether retrieval ran for this turn.
	UsedMemory       bool
	RelevantMemories []string
	SearchQueries    []string
	ErrorCount       int
	LastError        string
	RunID            string
}

// HistoryInput limits the window. Zero uses the configured history limit.
type HistoryInput struct {
	Limit int
}

type HistoryOutput struct {
	Turns []model.Turn
}
