// Package refactor implements the multi-pass code refactoring pipeline.
// An artifact (source text plus metadata) is pushed through one
// model-driven rewrite per enabled concern, in a fixed order, each pass
// consuming the previous pass's output. The model is treated as an
// untrusted collaborator: every reply is validated and classified
// before the pipeline moves on.
package refactor

// SourceArtifact is the text being refactored plus its identifying
// metadata. Metadata carries at least a "url" or "filename" key and is
// never mutated by the pipeline.
type SourceArtifact struct {
	Text     string
	Metadata map[string]string
}

// Label returns the artifact's identifying label, preferring a URL
// over a file name when both are present.
func (a *SourceArtifact) Label() string {
	if url, ok := a.Metadata["url"]; ok && url != "" {
		return url
	}
	return a.Metadata["filename"]
}

// PipelineConfig is the per-run configuration, constructed once by the
// caller and threaded through every component. The pipeline never reads
// ambient state.
type PipelineConfig struct {
	// EnabledConcerns selects which passes run. Must be non-empty;
	// an empty set is a configuration error, not a no-op.
	EnabledConcerns map[Concern]bool

	// MaxArtifactTokens is the cost ceiling checked before any model
	// call is made.
	MaxArtifactTokens int

	// StructuredOutput selects the JSON report rendering instead of
	// the human-readable markdown layout.
	StructuredOutput bool

	// UserInstructions is embedded verbatim into every pass prompt
	// when non-empty.
	UserInstructions string
}

// Enabled reports whether a concern's pass is active in this config.
func (c *PipelineConfig) Enabled(concern Concern) bool {
	return c.EnabledConcerns[concern]
}

// PassResult is the validated output of a single pass. RewrittenText
// becomes the next pass's input; Rationale is retained for the final
// report.
type PassResult struct {
	Concern          Concern
	DetectedLanguage string
	Rationale        string
	RewrittenText    string

	// EchoedMetadata is the metadata object the model echoed back.
	// Kept for diagnosis only; the report always carries the
	// artifact's original metadata.
	EchoedMetadata map[string]string
}

// ConcernRationale pairs a concern with the model's rationale for that
// pass, in pipeline order.
type ConcernRationale struct {
	Concern   Concern `json:"concern"`
	Rationale string  `json:"rationale"`
}

// FinalReport is the aggregate of a completed run. Halted runs produce
// a plain explanatory string instead, never a partial report.
type FinalReport struct {
	DetectedLanguage string             `json:"language"`
	Metadata         map[string]string  `json:"metadata"`
	Rationale        []ConcernRationale `json:"refactor_thoughts"`
	FinalText        string             `json:"refactored_code"`
}

// pipelineState is the orchestrator's working set for one run: the
// evolving text and the accumulated pass results, kept as two separate
// pieces of explicit state. Owned exclusively by the run that created
// it and discarded on completion or halt.
type pipelineState struct {
	currentText string
	results     []PassResult
	metadata    map[string]string
}
