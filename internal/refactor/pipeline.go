package refactor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"refactorkit/internal/llm"
	"refactorkit/internal/logging"
)

// State is a pipeline run's terminal (or in-flight) state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateHaltedRefusal
	StateHaltedMalformed
	StateHaltedBudget
	StateHaltedNoPasses
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateHaltedRefusal:
		return "halted:refusal"
	case StateHaltedMalformed:
		return "halted:malformed"
	case StateHaltedBudget:
		return "halted:budget"
	case StateHaltedNoPasses:
		return "halted:no-passes"
	default:
		return "unknown"
	}
}

// Halted reports whether the state is a terminal non-completed state.
func (s State) Halted() bool {
	switch s {
	case StateHaltedRefusal, StateHaltedMalformed, StateHaltedBudget, StateHaltedNoPasses:
		return true
	}
	return false
}

// RunOutcome is the result of one pipeline run. Completed runs carry a
// Report; halted runs carry only a Message (and a typed Cause where
// one exists). Callers must check State before assuming a report.
type RunOutcome struct {
	State   State
	Report  *FinalReport
	Message string
	Cause   error
}

// Pipeline runs the multi-pass refactor over single artifacts. Safe
// for concurrent use: each run owns its state exclusively.
type Pipeline struct {
	executor *PassExecutor
}

// New creates a pipeline backed by the given model client.
func New(client llm.Client) *Pipeline {
	return &Pipeline{executor: NewPassExecutor(client)}
}

// Run executes every enabled pass over the artifact, feeding each
// pass's rewritten text into the next. The contract is "all concerns
// applied or an explained halt": on refusal or malformed output the
// partial results are discarded, never reported as if complete.
//
// The returned error is non-nil only for model invocation failures and
// context cancellation, both of which are the caller's to handle;
// every other failure mode is a Halted* outcome.
func (p *Pipeline) Run(ctx context.Context, artifact *SourceArtifact, cfg *PipelineConfig) (*RunOutcome, error) {
	runID := uuid.New().String()[:8]

	if err := CheckBudget(artifact, cfg); err != nil {
		logging.Pipeline("run %s: rejected by budget guard: %v", runID, err)
		return &RunOutcome{
			State:   StateHaltedBudget,
			Message: err.Error(),
			Cause:   err,
		}, nil
	}

	passes, err := ActivePasses(cfg)
	if err != nil {
		logging.Pipeline("run %s: %v", runID, err)
		return &RunOutcome{
			State:   StateHaltedNoPasses,
			Message: err.Error(),
			Cause:   err,
		}, nil
	}

	logging.Pipeline("run %s: %d passes over %q (%d tokens estimated)",
		runID, len(passes), artifact.Label(), EstimateTokens(artifact.Text))

	st := &pipelineState{
		currentText: artifact.Text,
		metadata:    artifact.Metadata,
	}

	for i, tmpl := range passes {
		// Cooperative cancellation point, once per pass boundary.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload := BuildPrompt(tmpl, st.currentText, st.metadata, cfg.UserInstructions, i == 0)
		outcome, err := p.executor.Run(ctx, tmpl.Concern, payload)
		if err != nil {
			// Invocation failures propagate unchanged; retry policy
			// belongs to the caller.
			return nil, err
		}

		switch outcome.Kind {
		case OutcomeSuccess:
			st.results = append(st.results, *outcome.Result)
			st.currentText = outcome.Result.RewrittenText
			logging.PipelineDebug("run %s: pass %d/%d (%s) ok, %d bytes out",
				runID, i+1, len(passes), tmpl.Concern, len(st.currentText))

		case OutcomeRefusal:
			logging.Pipeline("run %s: model refused during %s pass", runID, tmpl.Concern)
			return &RunOutcome{
				State:   StateHaltedRefusal,
				Message: outcome.Refusal,
			}, nil

		case OutcomeMalformed:
			logging.Pipeline("run %s: malformed reply during %s pass: %s", runID, tmpl.Concern, outcome.Reason)
			cause := &MalformedResponseError{
				Concern: tmpl.Concern,
				Raw:     outcome.Raw,
				Reason:  outcome.Reason,
			}
			return &RunOutcome{
				State:   StateHaltedMalformed,
				Message: fmt.Sprintf("%v; raw reply follows:\n%s", cause, outcome.Raw),
				Cause:   cause,
			}, nil
		}
	}

	last := st.results[len(st.results)-1]
	report := &FinalReport{
		DetectedLanguage: last.DetectedLanguage,
		Metadata:         artifact.Metadata,
		FinalText:        st.currentText,
	}
	for _, r := range st.results {
		report.Rationale = append(report.Rationale, ConcernRationale{
			Concern:   r.Concern,
			Rationale: r.Rationale,
		})
	}

	logging.Pipeline("run %s: completed, language=%s", runID, report.DetectedLanguage)
	return &RunOutcome{State: StateCompleted, Report: report}, nil
}
