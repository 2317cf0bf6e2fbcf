package orchestrator

import (
	"time"

	"memory-agent/internal/agent"
	"memory-agent/internal/memory"
)

// Step names a state of the turn state machine.
type Step string

const (
	StepAssembleHistory  Step = "assemble_history"
	StepRouter           Step = "router"
	StepQuerySynthesizer Step = "query_synthesizer"
	StepRetrievalFetcher Step = "retrieval_fetcher"
	StepResponder        Step = "responder"

	stepDone Step = ""
)

// Config tunes one orchestrator. Non-positive limits fall back to defaults;
// a zero StepTimeout leaves steps without their own deadline.
type Config struct {
	HistoryLimit      int
	TopK              int
	MaxQueries        int
	StepTimeout       time.Duration
	ParallelRetrieval bool
}

const (
	defaultTopK       = 3
	defaultMaxQueries = 3
)

// run is the private state of one turn.
type run struct {
	userID  string
	history memory.History
	exclude *memory.ExcludeSet
	state   *agent.TurnState
}
