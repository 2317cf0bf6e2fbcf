package chat

import "errors"

var (
	ErrEmptyUserID  = errors.New("user id is required")
	ErrEmptyMessage = errors.New("message is empty")
	ErrInvalidLimit = errors.New("limit must not be negative")
)
