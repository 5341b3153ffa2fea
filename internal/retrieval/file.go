package retrieval

import (
	"context"
	"os"
	"path/filepath"

	"refactorkit/internal/logging"
	"refactorkit/internal/refactor"
)

// FileRetriever reads artifacts from the local filesystem.
type FileRetriever struct{}

// Fetch reads the file at path and wraps it as a source artifact with
// "filename" metadata.
func (r *FileRetriever) Fetch(ctx context.Context, path string) (*refactor.SourceArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RetrievalError{Locator: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RetrievalError{Locator: path, Err: err}
	}

	logging.Retrieval("read %s (%d bytes)", path, len(data))

	return &refactor.SourceArtifact{
		Text: string(data),
		Metadata: map[string]string{
			"filename": filepath.Base(path),
			"path":     path,
		},
	}, nil
}
