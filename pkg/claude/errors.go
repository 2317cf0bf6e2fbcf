package claude

import (
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
)

// IsRateLimited reports whether err is a 429 from the Messages API.
func IsRateLimited(err error) bool {
	var apiErr *anthropic.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
