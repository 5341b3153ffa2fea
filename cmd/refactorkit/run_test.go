package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelServer fakes the Anthropic messages endpoint, returning the
// given reply text for every call.
func modelServer(t *testing.T, replyText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": replyText},
			},
			"stop_reason": "end_turn",
		})
	}))
}

func writeRunFixtures(t *testing.T, baseURL string) (configPath, srcPath string) {
	t.Helper()
	dir := t.TempDir()

	configPath = filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`
llm:
  provider: anthropic
  api_key: test-key
  base_url: %s
refactor:
  enable_security: true
`, baseURL)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))

	srcPath = filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(srcPath, []byte("x=1\n"), 0o644))
	return configPath, srcPath
}

func executeRun(t *testing.T, configPath string, args ...string) error {
	t.Helper()
	cmd := newRunCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(append([]string{"--config", configPath, "--plain"}, args...))
	return cmd.ExecuteContext(context.Background())
}

func TestRunCommand_Completes(t *testing.T) {
	srv := modelServer(t, `{"language": "python", "metadata": {"filename": "app.py"}, "thoughts": "ok", "refactored_code": "x = 1\n"}`)
	defer srv.Close()

	configPath, srcPath := writeRunFixtures(t, srv.URL)
	assert.NoError(t, executeRun(t, configPath, srcPath))
}

func TestRunCommand_MalformedHaltReturnsErrorInsteadOfExiting(t *testing.T) {
	// A non-refusal halt must surface as errHalted so main's deferred
	// log flush still runs before the process exits.
	srv := modelServer(t, "no structured reply here")
	defer srv.Close()

	configPath, srcPath := writeRunFixtures(t, srv.URL)
	err := executeRun(t, configPath, srcPath)
	assert.ErrorIs(t, err, errHalted)
}

func TestRunCommand_RefusalExitsClean(t *testing.T) {
	srv := modelServer(t, `{"final_answer": "I will not refactor this."}`)
	defer srv.Close()

	configPath, srcPath := writeRunFixtures(t, srv.URL)
	assert.NoError(t, executeRun(t, configPath, srcPath))
}
