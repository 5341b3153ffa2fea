package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllConcerns_CanonicalOrder(t *testing.T) {
	want := []Concern{
		ConcernSecurity,
		ConcernPerformance,
		ConcernMemory,
		ConcernCorrectness,
		ConcernMaintainability,
		ConcernReliability,
	}
	assert.Equal(t, want, AllConcerns())
}

func TestParseConcern(t *testing.T) {
	c, ok := ParseConcern("security")
	require.True(t, ok)
	assert.Equal(t, ConcernSecurity, c)

	c, ok = ParseConcern("MAINTAINABILITY")
	require.True(t, ok)
	assert.Equal(t, ConcernMaintainability, c)

	_, ok = ParseConcern("style")
	assert.False(t, ok)
}

func TestConcern_MarshalText(t *testing.T) {
	b, err := ConcernReliability.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Reliability", string(b))
}

func TestActivePasses_OrderIgnoresMapIteration(t *testing.T) {
	// Map iteration order is randomized; the pass order must come from
	// the canonical sequence regardless.
	cfg := &PipelineConfig{EnabledConcerns: map[Concern]bool{
		ConcernReliability: true,
		ConcernSecurity:    true,
		ConcernMemory:      true,
	}}

	for range 20 {
		passes, err := ActivePasses(cfg)
		require.NoError(t, err)
		require.Len(t, passes, 3)
		assert.Equal(t, ConcernSecurity, passes[0].Concern)
		assert.Equal(t, ConcernMemory, passes[1].Concern)
		assert.Equal(t, ConcernReliability, passes[2].Concern)
	}
}

func TestActivePasses_CarriesInstructions(t *testing.T) {
	cfg := &PipelineConfig{EnabledConcerns: map[Concern]bool{ConcernCorrectness: true}}

	passes, err := ActivePasses(cfg)
	require.NoError(t, err)
	require.Len(t, passes, 1)
	assert.Equal(t, concernInstructions[ConcernCorrectness], passes[0].InstructionBody)
	assert.NotEmpty(t, passes[0].InstructionBody)
}

func TestActivePasses_DisabledEntriesIgnored(t *testing.T) {
	// A key explicitly set to false is the same as an absent key.
	cfg := &PipelineConfig{EnabledConcerns: map[Concern]bool{
		ConcernSecurity: false,
	}}

	_, err := ActivePasses(cfg)
	assert.ErrorIs(t, err, ErrNoActivePasses)
}
