package middleware

import (
	"memory-agent/pkg/log"
)

// Middleware bundles the gin middlewares of the API.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New creates the middleware set. perMin <= 0 disables rate limiting.
func New(l log.Logger, perMin int) Middleware {
	m := Middleware{l: l}
	if perMin > 0 {
		m.limiter = newRateLimiter(perMin)
	}
	return m
}
