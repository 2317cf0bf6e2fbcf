package llmprovider

import (
	"context"
	"strings"

	"memory-agent/pkg/claude"
	"memory-agent/pkg/gemini"
)

// Provider names recognized by the factory.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Tools:             convertToGeminiTools(req.Tools),
		ForceFunction:     req.ForceFunction,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, providerError(ProviderGemini, err, gemini.IsRateLimited(err))
	}

	usage := &Usage{}
	if resp.Usage != nil {
		usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	return &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: ProviderGemini,
		ModelName:    a.client.Model(),
		Usage:        usage,
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return ProviderGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// ClaudeAdapter adapts pkg/claude to llmprovider.Provider interface
type ClaudeAdapter struct {
	client claude.IClaude
}

// NewClaudeAdapter creates a new Claude adapter
func NewClaudeAdapter(client claude.IClaude) *ClaudeAdapter {
	return &ClaudeAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *ClaudeAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	claudeReq := &claude.Request{
		Messages:    convertToClaudeMessages(req.Messages),
		ForceTool:   req.ForceFunction,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		claudeReq.System = joinText(req.SystemInstruction.Parts)
	}
	for _, t := range req.Tools {
		claudeReq.Tools = append(claudeReq.Tools, claude.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}

	resp, err := a.client.GenerateContent(ctx, claudeReq)
	if err != nil {
		return nil, providerError(ProviderClaude, err, claude.IsRateLimited(err))
	}

	parts := []Part{}
	if resp.Text != "" {
		parts = append(parts, Part{Text: resp.Text})
	}
	for _, tc := range resp.ToolCalls {
		parts = append(parts, Part{FunctionCall: &FunctionCall{Name: tc.Name, Args: tc.Input}})
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: parts},
		ProviderName: ProviderClaude,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

// Name returns provider name
func (a *ClaudeAdapter) Name() string {
	return ProviderClaude
}

// Model returns model name
func (a *ClaudeAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers for Gemini
func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &gemini.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &gemini.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	role := gemini.RoleUser
	if msg.Role == RoleAssistant {
		role = gemini.RoleModel
	}
	return &gemini.Content{Role: role, Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGeminiContent(&msgs[i])
	}
	return contents
}

func convertToGeminiTools(tools []Tool) []gemini.Tool {
	geminiTools := make([]gemini.Tool, len(tools))
	for i, t := range tools {
		geminiTools[i] = gemini.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return geminiTools
}

func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
	}
	return Message{Role: RoleAssistant, Parts: parts}
}

// Conversion helpers for Claude. System turns in history are folded into user turns.
func convertToClaudeMessages(msgs []Message) []claude.Message {
	out := make([]claude.Message, 0, len(msgs))
	for _, m := range msgs {
		role := claude.RoleUser
		if m.Role == RoleAssistant {
			role = claude.RoleAssistant
		}
		out = append(out, claude.Message{Role: role, Text: joinText(m.Parts)})
	}
	return out
}

func joinText(parts []Part) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
