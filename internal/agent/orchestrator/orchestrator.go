package orchestrator

import (
	"context"
	"errors"

	"memory-agent/internal/agent"
	"memory-agent/internal/memory"
	"memory-agent/internal/model"
	"memory-agent/internal/observability"
)

type stepFunc func(ctx context.Context, r *run) error

// transition leads to next when guard holds. The first matching transition wins;
// a step with none is terminal.
type transition struct {
	next  Step
	guard func(*agent.TurnState) bool
}

func always(*agent.TurnState) bool        { return true }
func needsMemory(s *agent.TurnState) bool { return s.NeedsMemory }
func skipMemory(s *agent.TurnState) bool  { return !s.NeedsMemory }

func defaultTransitions() map[Step][]transition {
	return map[Step][]transition{
		StepRouter: {
			{next: StepQuerySynthesizer, guard: needsMemory},
			{next: StepResponder, guard: skipMemory},
		},
		StepQuerySynthesizer: {{next: StepRetrievalFetcher, guard: always}},
		StepRetrievalFetcher: {{next: StepResponder, guard: always}},
		StepResponder:        nil,
	}
}

// degradedError marks a failure the step already recovered from in place.
// It is counted but adds no fallback message.
type degradedError struct{ err error }

func (e *degradedError) Error() string { return e.err.Error() }
func (e *degradedError) Unwrap() error { return e.err }

func degraded(err error) error {
	if err == nil {
		return nil
	}
	return &degradedError{err: err}
}

func isDegraded(err error) bool {
	var d *degradedError
	return errors.As(err, &d)
}

// Run processes one memory-enabled turn for userID. It always returns a state
// whose Reply is the message to show; failures surface only through
// ErrorCount and LastError.
func (o *Orchestrator) Run(ctx context.Context, userID, input string) *agent.TurnState {
	r := &run{
		userID:  userID,
		exclude: memory.NewExcludeSet(),
		state:   agent.NewTurnState(input, o.now()),
	}

	o.exec(ctx, r, StepAssembleHistory)
	for step := StepRouter; step != stepDone; step = o.next(step, r.state) {
		o.exec(ctx, r, step)
	}

	o.metrics.TurnCompleted(observability.PathMemory)
	o.l.Infof(ctx, "%s: user=%s needs_memory=%t queries=%d hits=%d errors=%d",
		LogPrefixRun, userID, r.state.NeedsMemory, len(r.state.SearchQueries), len(r.state.MemoryHits), r.state.ErrorCount)
	return r.state
}

// RunWithoutMemory answers input with a single memory-free generation. It
// reads no history and writes nothing to the store.
func (o *Orchestrator) RunWithoutMemory(ctx context.Context, input string) *agent.TurnState {
	state := agent.NewTurnState(input, o.now())

	stepCtx, cancel := o.stepContext(ctx)
	defer cancel()

	reply, err := o.lang.Generate(stepCtx, buildNoMemoryPrompt(input), nil)
	if err != nil {
		o.l.Warnf(ctx, "%s: %v", LogPrefixNoMemory, err)
		state.RecordError(err)
		state.Append(model.RoleAssistant, FallbackMessage, o.now())
	} else {
		state.Append(model.RoleAssistant, reply, o.now())
	}

	o.metrics.TurnCompleted(observability.PathNoMemory)
	return state
}

func (o *Orchestrator) next(step Step, s *agent.TurnState) Step {
	for _, t := range o.transitions[step] {
		if t.guard(s) {
			return t.next
		}
	}
	return stepDone
}

// exec runs one step under the step timeout and contains its failure.
func (o *Orchestrator) exec(ctx context.Context, r *run, step Step) {
	handler, ok := o.handlers[step]
	if !ok {
		return
	}

	stepCtx, cancel := o.stepContext(ctx)
	start := o.now()
	err := handler(stepCtx, r)
	cancel()

	o.metrics.ObserveStep(string(step), o.now().Sub(start), err != nil)
	if err == nil {
		return
	}

	r.state.RecordError(err)
	if isDegraded(err) {
		o.l.Warnf(ctx, "%s: step %s degraded: %v", LogPrefixRun, step, err)
		return
	}
	o.l.Errorf(ctx, "%s: step %s failed: %v", LogPrefixRun, step, err)
	r.state.Append(model.RoleAssistant, FallbackMessage, o.now())
}

func (o *Orchestrator) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.cfg.StepTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.cfg.StepTimeout)
}
