// Package retrieval supplies source artifacts to the pipeline: local
// files by path, and raw file contents by URL (with GitHub/GitLab blob
// URLs rewritten to their raw form). The pipeline itself never fetches
// anything; it consumes whatever a Retriever hands it.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"refactorkit/internal/refactor"
)

// Retriever fetches the initial artifact for a pipeline run.
type Retriever interface {
	Fetch(ctx context.Context, locator string) (*refactor.SourceArtifact, error)
}

// RetrievalError reports a failed fetch. Propagated unchanged to the
// caller.
type RetrievalError struct {
	Locator string
	Err     error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to retrieve %q: %v", e.Locator, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ForLocator picks a retriever by locator shape: URLs go to the HTTP
// retriever, everything else is treated as a local path.
func ForLocator(locator string) Retriever {
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		return NewHTTPRetriever()
	}
	return &FileRetriever{}
}
