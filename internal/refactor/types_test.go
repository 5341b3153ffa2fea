package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceArtifact_Label(t *testing.T) {
	a := &SourceArtifact{Metadata: map[string]string{"filename": "a.py"}}
	assert.Equal(t, "a.py", a.Label())

	b := &SourceArtifact{Metadata: map[string]string{
		"filename": "a.py",
		"url":      "https://example.com/a.py",
	}}
	assert.Equal(t, "https://example.com/a.py", b.Label())

	c := &SourceArtifact{Metadata: map[string]string{}}
	assert.Equal(t, "", c.Label())
}

func TestMalformedResponseError_Message(t *testing.T) {
	err := &MalformedResponseError{
		Concern: ConcernPerformance,
		Raw:     "garbage",
		Reason:  `required field "language" absent`,
	}
	assert.Contains(t, err.Error(), "Performance")
	assert.Contains(t, err.Error(), `required field "language" absent`)
}
