package retrieval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRetriever_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))

	artifact, err := (&FileRetriever{}).Fetch(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "print('hi')\n", artifact.Text)
	assert.Equal(t, "script.py", artifact.Metadata["filename"])
	assert.Equal(t, path, artifact.Metadata["path"])
	assert.Equal(t, "script.py", artifact.Label())
}

func TestFileRetriever_MissingFile(t *testing.T) {
	_, err := (&FileRetriever{}).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.py"))
	require.Error(t, err)

	var retErr *RetrievalError
	require.ErrorAs(t, err, &retErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPRetriever_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/app.go", r.URL.Path)
		w.Write([]byte("package main\n"))
	}))
	defer srv.Close()

	artifact, err := NewHTTPRetriever().Fetch(context.Background(), srv.URL+"/files/app.go")
	require.NoError(t, err)

	assert.Equal(t, "package main\n", artifact.Text)
	assert.Equal(t, srv.URL+"/files/app.go", artifact.Metadata["url"])
	assert.Equal(t, "app.go", artifact.Metadata["filename"])
}

func TestHTTPRetriever_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTPRetriever().Fetch(context.Background(), srv.URL+"/gone.go")
	require.Error(t, err)

	var retErr *RetrievalError
	require.ErrorAs(t, err, &retErr)
	assert.Contains(t, err.Error(), "404")
}

func TestRewriteRawURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"github blob",
			"https://github.com/owner/repo/blob/main/pkg/file.go",
			"https://raw.githubusercontent.com/owner/repo/main/pkg/file.go",
		},
		{
			"github blob with nested path",
			"https://github.com/o/r/blob/v1.2.3/a/b/c.py",
			"https://raw.githubusercontent.com/o/r/v1.2.3/a/b/c.py",
		},
		{
			"github non-blob",
			"https://github.com/owner/repo/releases",
			"https://github.com/owner/repo/releases",
		},
		{
			"gitlab blob",
			"https://gitlab.com/group/proj/-/blob/main/src/app.rb",
			"https://gitlab.com/group/proj/-/raw/main/src/app.rb",
		},
		{
			"plain URL untouched",
			"https://example.com/raw/file.txt",
			"https://example.com/raw/file.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rewriteRawURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForLocator(t *testing.T) {
	assert.IsType(t, &HTTPRetriever{}, ForLocator("https://example.com/a.go"))
	assert.IsType(t, &HTTPRetriever{}, ForLocator("http://example.com/a.go"))
	assert.IsType(t, &FileRetriever{}, ForLocator("/tmp/a.go"))
	assert.IsType(t, &FileRetriever{}, ForLocator("relative/a.go"))
}
