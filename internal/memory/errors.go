package memory

import "errors"

var (
	ErrInvalidNamespace = errors.New("memory: namespace must not be empty")
	ErrStoreUnavailable = errors.New("memory: store unavailable")
	ErrEmptyContent     = errors.New("memory: record content must not be empty")
)
