package memory

import (
	"time"

	"memory-agent/internal/model"
)

// Record is what callers hand to Store.Upsert.
type Record struct {
	ID        string
	Content   string
	Role      model.Role
	Timestamp time.Time
}

// Purpose tells the embedder whether a text is stored or used to search.
type Purpose string

const (
	PurposeDocument Purpose = "document"
	PurposeQuery    Purpose = "query"
)

// History is the assembled window for one user.
type History struct {
	// Turns are ordered oldest to newest.
	Turns []model.Turn
	// SeedIDs are the ids of the records in Turns.
	SeedIDs []string
}
