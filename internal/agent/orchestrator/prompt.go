package orchestrator

import (
	"fmt"
	"strings"

	"memory-agent/internal/agent"
	"memory-agent/internal/model"
)

func formatHistory(turns []model.Turn) string {
	if len(turns) == 0 {
		return emptyHistory
	}
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, t.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildRouterPrompt(input string, turns []model.Turn) string {
	return fmt.Sprintf(RouterPrompt, input, formatHistory(turns))
}

func buildQueryPrompt(input string, turns []model.Turn) string {
	return fmt.Sprintf(QueryPrompt, input, formatHistory(turns))
}

// buildResponderPrompt includes the memory block only for turns routed
// through retrieval that found something.
func buildResponderPrompt(s *agent.TurnState, turns []model.Turn) string {
	var block string
	if s.NeedsMemory && len(s.MemoryHits) > 0 {
		var b strings.Builder
		b.WriteString(MemoryBlockHeader)
		for _, hit := range s.MemoryHits {
			fmt.Fprintf(&b, "- %s\n", hit)
		}
		block = b.String()
	}
	return fmt.Sprintf(ResponderPrompt, s.CurrentInput, formatHistory(turns), block)
}

func buildNoMemoryPrompt(input string) string {
	return fmt.Sprintf(NoMemoryPrompt, input)
}
