package refactor

import (
	"errors"
	"fmt"
)

// ErrNoActivePasses is returned when the enabled-concern set filters
// the canonical pass order down to nothing. Fatal to the run; the
// caller must enable at least one concern.
var ErrNoActivePasses = errors.New("no refactor passes enabled: enable at least one concern")

// BudgetExceededError reports an artifact whose estimated token cost
// exceeds the configured ceiling. Not retryable without shrinking the
// artifact; both numbers are carried so the caller can say exactly how
// far over budget the artifact is.
type BudgetExceededError struct {
	ActualTokens int
	MaxTokens    int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("artifact is too large to refactor: %d tokens estimated, limit is %d", e.ActualTokens, e.MaxTokens)
}

// MalformedResponseError reports a model reply that did not match the
// expected structure. The raw reply is retained for diagnosis, never
// silently discarded.
type MalformedResponseError struct {
	Concern Concern
	Raw     string
	Reason  string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s pass returned a malformed response (%s)", e.Concern, e.Reason)
}
