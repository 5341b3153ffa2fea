package refactor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Render formats a completed run's report. When structured is true the
// report is serialized field-for-field as a fenced JSON block;
// otherwise it becomes the fixed human-readable markdown layout. Pure
// function; it knows nothing about how the report was produced.
func Render(report *FinalReport, structured bool) (string, error) {
	if structured {
		return renderJSON(report)
	}
	return renderMarkdown(report), nil
}

func renderJSON(report *FinalReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}
	return "```json\n" + string(data) + "\n```", nil
}

func renderMarkdown(report *FinalReport) string {
	var sb strings.Builder

	sb.WriteString("## Code Refactor\n")
	fmt.Fprintf(&sb, "- Language: **%s**\n", report.DetectedLanguage)
	fmt.Fprintf(&sb, "- File: **%s**\n\n", reportLabel(report.Metadata))

	for i, entry := range report.Rationale {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "#### **%s**\n- %s", entry.Concern, entry.Rationale)
	}

	sb.WriteString("\n\n### Refactored Code\n")
	fmt.Fprintf(&sb, "```%s\n%s\n```\n", report.DetectedLanguage, report.FinalText)

	return sb.String()
}

// reportLabel picks the artifact's identifying label, preferring a URL
// over a file name when both are present.
func reportLabel(metadata map[string]string) string {
	if url, ok := metadata["url"]; ok && url != "" {
		return url
	}
	return metadata["filename"]
}
