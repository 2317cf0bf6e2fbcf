package model

import "time"

// MemoryRecord is one stored turn. Records are never mutated; they are
// removed only by clearing the owning user's namespace.
type MemoryRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// Turn drops the storage-only fields.
func (r MemoryRecord) Turn() Turn {
	return Turn{Role: r.Role, Content: r.Content}
}

// MemoryHit is a semantic search result.
type MemoryHit struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}
