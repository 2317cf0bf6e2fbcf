// Package repository holds helpers shared by the memory store backends.
package repository

import (
	"strconv"
	"time"
)

// Payload field names shared by every backend.
const (
	FieldUserID    = "user_id"
	FieldContent   = "content"
	FieldRole      = "role"
	FieldTimestamp = "timestamp"
)

// EncodeTimestamp stores time as unix microseconds. The zero time encodes as 0.
func EncodeTimestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

// DecodeTimestamp is the inverse of EncodeTimestamp. 0 decodes to the zero time.
func DecodeTimestamp(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}

// DecodeTimestampAny accepts the numeric shapes JSON and string metadata produce.
func DecodeTimestampAny(v interface{}) time.Time {
	switch n := v.(type) {
	case int64:
		return DecodeTimestamp(n)
	case int:
		return DecodeTimestamp(int64(n))
	case float64:
		return DecodeTimestamp(int64(n))
	case string:
		us, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return time.Time{}
		}
		return DecodeTimestamp(us)
	}
	return time.Time{}
}
