// Package llm provides the model collaborator clients. The pipeline
// treats every client as synchronous and blocking; retry and backoff
// policy belongs to the caller, not here.
package llm

import (
	"context"
	"fmt"
)

// Client is the minimal interface the pipeline uses to call a model.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// InvocationError wraps a transport, quota, or provider failure. The
// pipeline propagates it unchanged so the caller can apply its own
// retry policy.
type InvocationError struct {
	Provider string
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s invocation failed: %v", e.Provider, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
