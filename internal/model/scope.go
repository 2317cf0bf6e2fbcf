package model

// Scope identifies who a request acts on behalf of.
type Scope struct {
	UserID string
}
