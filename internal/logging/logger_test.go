package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DisabledIsNoOp(t *testing.T) {
	require.NoError(t, Initialize(Config{DebugMode: false}))
	defer CloseAll()

	// Must not panic or create files.
	Pipeline("this goes nowhere %d", 42)
	assert.Same(t, nop, Get(CategoryPipeline))
}

func TestInitialize_DebugRequiresDir(t *testing.T) {
	err := Initialize(Config{DebugMode: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log directory required")
}

func TestGet_WritesDatedCategoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Config{DebugMode: true, Dir: dir, Level: "debug"}))
	defer CloseAll()

	Pipeline("run %s started", "abc123")
	PipelineDebug("pass detail")
	CloseAll()

	name := time.Now().Format("2006-01-02") + "_pipeline.log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "run abc123 started")
	assert.Contains(t, content, "pass detail")
	assert.Contains(t, content, `"category":"pipeline"`)
}

func TestGet_CategoryFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Config{
		DebugMode:  true,
		Dir:        dir,
		Categories: map[string]bool{"api": false},
	}))
	defer CloseAll()

	assert.Same(t, nop, Get(CategoryAPI))
	assert.NotSame(t, nop, Get(CategoryPipeline))
}

func TestGet_InfoLevelSuppressesDebug(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Config{DebugMode: true, Dir: dir, Level: "info"}))
	defer CloseAll()

	PipelineDebug("should not appear")
	Pipeline("should appear")
	CloseAll()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "should appear"))
	assert.False(t, strings.Contains(string(data), "should not appear"))
}
