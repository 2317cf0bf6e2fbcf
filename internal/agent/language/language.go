package language

import (
	"context"
	"fmt"
	"strings"

	"memory-agent/internal/agent"
	"memory-agent/internal/model"
	"memory-agent/pkg/llmprovider"
)

func (s *implService) Generate(ctx context.Context, prompt string, history []model.Turn) (string, error) {
	req := &llmprovider.Request{
		Messages: append(toMessages(history), llmprovider.TextMessage(llmprovider.RoleUser, prompt)),
	}

	resp, err := s.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	s.l.Debugf(ctx, "%s: %s/%s replied with %d chars", LogPrefixGenerate, resp.ProviderName, resp.ModelName, len(text))
	return text, nil
}

func (s *implService) Invoke(ctx context.Context, fn agent.Function, prompt string) (agent.FunctionCall, error) {
	req := &llmprovider.Request{
		Messages: []llmprovider.Message{llmprovider.TextMessage(llmprovider.RoleUser, prompt)},
		Tools: []llmprovider.Tool{{
			Name:        fn.Name,
			Description: fn.Description,
			Parameters:  fn.Parameters,
		}},
		ForceFunction: fn.Name,
	}

	resp, err := s.llm.GenerateContent(ctx, req)
	if err != nil {
		return agent.Missing(), fmt.Errorf("invoke %s: %w", fn.Name, err)
	}

	call := resp.FunctionCall()
	if call == nil || call.Name != fn.Name {
		s.l.Debugf(ctx, "%s: %s returned no %s call", LogPrefixInvoke, resp.ProviderName, fn.Name)
		return agent.Missing(), nil
	}
	return agent.Present(call.Name, call.Args), nil
}

// toMessages maps history turns onto provider roles. Stored system turns are
// replayed as user turns so providers that reject mid-conversation system
// messages still accept the history.
func toMessages(history []model.Turn) []llmprovider.Message {
	msgs := make([]llmprovider.Message, 0, len(history)+1)
	for _, t := range history {
		if t.Content == "" {
			continue
		}
		role := llmprovider.RoleUser
		if t.Role == model.RoleAssistant {
			role = llmprovider.RoleAssistant
		}
		msgs = append(msgs, llmprovider.TextMessage(role, t.Content))
	}
	return msgs
}
