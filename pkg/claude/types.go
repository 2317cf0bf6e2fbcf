package claude

import (
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
)

// Config holds Claude client configuration
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int64
	HTTPClient *http.Client
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("claude: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return nil
}

// Request is a single Messages API call.
type Request struct {
	System   string
	Messages []Message
	Tools    []Tool
	// ForceTool, when set, makes the model call exactly this tool.
	ForceTool   string
	Temperature float64
	MaxTokens   int
}

// Message is a plain-text conversation message.
type Message struct {
	Role string
	Text string
}

// Tool declares a callable function with a JSON Schema for its input.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolCall is a tool_use block from the response.
type ToolCall struct {
	Name  string
	Input map[string]interface{}
}

// Response flattens the response content blocks.
type Response struct {
	Text      string
	ToolCalls []ToolCall
	Usage     Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// claudeImpl is the internal implementation of IClaude
type claudeImpl struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}
