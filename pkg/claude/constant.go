package claude

const (
	// DefaultModel is the default Claude model
	DefaultModel = "claude-sonnet-4-5"

	// DefaultMaxTokens caps a single response when the request sets no limit
	DefaultMaxTokens = 1024

	RoleUser      = "user"
	RoleAssistant = "assistant"
)
