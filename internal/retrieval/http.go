package retrieval

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"refactorkit/internal/logging"
	"refactorkit/internal/refactor"
)

// maxArtifactBytes caps a fetched body. Anything bigger would fail the
// budget guard anyway; cutting off here avoids buffering junk.
const maxArtifactBytes = 8 << 20

// HTTPRetriever fetches raw file contents by URL. Browser-facing
// GitHub and GitLab blob URLs are rewritten to their raw-content
// equivalents before fetching.
type HTTPRetriever struct {
	httpClient *http.Client
}

// NewHTTPRetriever creates a retriever with a default timeout.
func NewHTTPRetriever() *HTTPRetriever {
	return &HTTPRetriever{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads the file at the URL and wraps it as a source
// artifact with "url" and "filename" metadata.
func (r *HTTPRetriever) Fetch(ctx context.Context, rawURL string) (*refactor.SourceArtifact, error) {
	fetchURL, err := rewriteRawURL(rawURL)
	if err != nil {
		return nil, &RetrievalError{Locator: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fetchURL, nil)
	if err != nil {
		return nil, &RetrievalError{Locator: rawURL, Err: err}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &RetrievalError{Locator: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RetrievalError{Locator: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactBytes))
	if err != nil {
		return nil, &RetrievalError{Locator: rawURL, Err: err}
	}

	logging.Retrieval("fetched %s (%d bytes)", fetchURL, len(body))

	parsed, _ := url.Parse(rawURL)
	filename := ""
	if parsed != nil {
		filename = path.Base(parsed.Path)
	}

	return &refactor.SourceArtifact{
		Text: string(body),
		Metadata: map[string]string{
			"url":      rawURL,
			"filename": filename,
		},
	}, nil
}

// rewriteRawURL maps browser blob URLs to raw-content URLs.
// github.com/<owner>/<repo>/blob/<ref>/<path> becomes the
// raw.githubusercontent.com form; GitLab blob paths get /-/raw/.
// Anything else passes through untouched.
func rewriteRawURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	switch {
	case u.Host == "github.com":
		parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
		if len(parts) >= 5 && parts[2] == "blob" {
			u.Host = "raw.githubusercontent.com"
			u.Path = "/" + strings.Join(append(parts[:2], parts[3:]...), "/")
			return u.String(), nil
		}
	case strings.Contains(u.Path, "/-/blob/"):
		u.Path = strings.Replace(u.Path, "/-/blob/", "/-/raw/", 1)
		return u.String(), nil
	}

	return rawURL, nil
}
