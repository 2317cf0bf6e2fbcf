package memory

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewID returns a time-ordered id rendered in UUID form, which every backend accepts.
func NewID() string {
	return uuid.UUID(ulid.Make()).String()
}

// ValidateNamespace rejects empty namespaces.
func ValidateNamespace(namespace string) error {
	if namespace == "" {
		return ErrInvalidNamespace
	}
	return nil
}
