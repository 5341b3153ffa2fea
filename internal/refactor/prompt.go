package refactor

import (
	"fmt"
	"sort"
	"strings"
)

// PromptPayload is the exact instruction pair for one pass, split into
// a system prompt (the fixed instructions) and a user prompt (the
// artifact under refactor).
type PromptPayload struct {
	System string
	User   string
}

// BuildPrompt produces the payload for one pass. Pure: no side
// effects, no network calls. The current text is annotated with
// 1-based line numbers purely for the model's reference; line numbers
// are never parsed back out of the response, and the output contract
// is always the full rewritten text, never a diff.
func BuildPrompt(tmpl ConcernTemplate, currentText string, metadata map[string]string, userInstructions string, firstPass bool) PromptPayload {
	var sys strings.Builder
	sys.WriteString(baseInstructions)
	sys.WriteString("\n\n")
	sys.WriteString(formatInstructions)
	sys.WriteString("\n\n")
	sys.WriteString(tmpl.InstructionBody)

	var user strings.Builder
	user.WriteString("----- CODE METADATA -----\n")
	user.WriteString(formatMetadata(metadata))
	user.WriteString("----- CODE METADATA -----\n")
	if !firstPass {
		user.WriteString("\nThe code below already carries the changes of earlier refactoring passes. Apply only the current pass's category of changes on top of it.\n")
	}
	user.WriteString("\n----- CODE TO REFACTOR -----\n")
	user.WriteString(NumberLines(currentText))
	user.WriteString("\n----- CODE TO REFACTOR -----\n")
	if userInstructions != "" {
		user.WriteString("\nIn addition to the base code refactor instructions, consider these user-provided instructions:\n")
		user.WriteString(userInstructions)
		user.WriteString("\n")
	}
	user.WriteString("\n")
	user.WriteString(closingInstructions)

	return PromptPayload{System: sys.String(), User: user.String()}
}

// NumberLines prefixes every line of text with its 1-based line
// number. Numbering is stable across passes because it is always
// computed from the pass's own input.
func NumberLines(text string) string {
	lines := strings.Split(text, "\n")
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d: %s", i+1, line)
	}
	return sb.String()
}

// formatMetadata renders metadata as sorted key: value lines so the
// payload is deterministic for a given artifact.
func formatMetadata(metadata map[string]string) string {
	if len(metadata) == 0 {
		return "(none)\n"
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\n", k, metadata[k])
	}
	return sb.String()
}
