package refactor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"refactorkit/internal/llm"
	"refactorkit/internal/logging"
)

// OutcomeKind classifies a pass's result.
type OutcomeKind int

const (
	// OutcomeSuccess means the model produced a valid rewrite.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRefusal means the model declined the task. Terminal but
	// not a system failure; the refusal text is reported verbatim.
	OutcomeRefusal
	// OutcomeMalformed means the reply did not match the expected
	// structure. Terminal; the raw reply is retained for diagnosis.
	OutcomeMalformed
)

// String returns the outcome kind's name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRefusal:
		return "refusal"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// PassOutcome is the tagged result of one pass. Exactly one of the
// payload fields is meaningful, selected by Kind.
type PassOutcome struct {
	Kind    OutcomeKind
	Result  *PassResult // Kind == OutcomeSuccess
	Refusal string      // Kind == OutcomeRefusal
	Raw     string      // Kind == OutcomeMalformed
	Reason  string      // Kind == OutcomeMalformed
}

// PassExecutor invokes the model once per pass and validates the
// structured reply. It never retries; transport failures propagate to
// the caller unchanged.
type PassExecutor struct {
	client llm.Client
}

// NewPassExecutor creates an executor backed by the given model client.
func NewPassExecutor(client llm.Client) *PassExecutor {
	return &PassExecutor{client: client}
}

// passResponse is the wire contract with the model. Pointer and map
// fields distinguish an absent key from an empty value; all four of
// language, metadata, thoughts, and refactored_code are required.
type passResponse struct {
	Language       *string        `json:"language"`
	Metadata       map[string]any `json:"metadata"`
	Thoughts       *string        `json:"thoughts"`
	RefactoredCode *string        `json:"refactored_code"`
	FinalAnswer    *string        `json:"final_answer"`
}

// Run executes one pass. The returned error is non-nil only for model
// invocation failures (transport, quota); every reply that arrives is
// classified into the three-way outcome instead.
func (e *PassExecutor) Run(ctx context.Context, concern Concern, payload PromptPayload) (PassOutcome, error) {
	logging.API("invoking model for %s pass (prompt %d bytes)", concern, len(payload.System)+len(payload.User))

	raw, err := e.client.CompleteWithSystem(ctx, payload.System, payload.User)
	if err != nil {
		return PassOutcome{}, err
	}

	return classify(concern, raw), nil
}

// classify decides the outcome of a raw reply exactly once. A reply
// that decodes and carries final_answer is a refusal; a reply that
// fails to decode or is missing a required field is malformed;
// everything else is a success.
func classify(concern Concern, raw string) PassOutcome {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return PassOutcome{
			Kind:   OutcomeMalformed,
			Raw:    raw,
			Reason: "no JSON object found in reply",
		}
	}

	var resp passResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return PassOutcome{
			Kind:   OutcomeMalformed,
			Raw:    raw,
			Reason: fmt.Sprintf("JSON decode failed: %v", err),
		}
	}

	if resp.FinalAnswer != nil {
		return PassOutcome{Kind: OutcomeRefusal, Refusal: *resp.FinalAnswer}
	}

	if missing := missingFields(&resp); missing != "" {
		return PassOutcome{
			Kind:   OutcomeMalformed,
			Raw:    raw,
			Reason: fmt.Sprintf("required field %q absent", missing),
		}
	}

	return PassOutcome{
		Kind: OutcomeSuccess,
		Result: &PassResult{
			Concern:          concern,
			DetectedLanguage: *resp.Language,
			Rationale:        *resp.Thoughts,
			RewrittenText:    *resp.RefactoredCode,
			EchoedMetadata:   coerceMetadata(resp.Metadata),
		},
	}
}

// missingFields returns the name of the first absent required field,
// or "" when all are present.
func missingFields(resp *passResponse) string {
	switch {
	case resp.Language == nil:
		return "language"
	case resp.Metadata == nil:
		return "metadata"
	case resp.Thoughts == nil:
		return "thoughts"
	case resp.RefactoredCode == nil:
		return "refactored_code"
	}
	return ""
}

// coerceMetadata flattens the model's echoed metadata object to
// strings. Models occasionally echo numbers or nested values; the echo
// is diagnostic only, so lossy stringification is fine here.
func coerceMetadata(m map[string]any) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

// extractJSON finds the first top-level JSON object in a reply,
// tolerating markdown fences and prose around it.
func extractJSON(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		c := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}

	return ""
}
