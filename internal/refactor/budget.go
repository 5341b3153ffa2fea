package refactor

// EstimateTokens estimates the token count for text using the chars/4
// approximation. Fast, deterministic, and strictly monotonic in text
// length; actual tokenization varies by model.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// CheckBudget verifies the artifact fits the configured cost ceiling.
// Runs once, before any model call, so no tokens are spent on a
// pipeline that cannot complete. Fails closed: an oversized artifact
// is rejected, never truncated.
func CheckBudget(artifact *SourceArtifact, cfg *PipelineConfig) error {
	actual := EstimateTokens(artifact.Text)
	if actual > cfg.MaxArtifactTokens {
		return &BudgetExceededError{ActualTokens: actual, MaxTokens: cfg.MaxArtifactTokens}
	}
	return nil
}
