package triage

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RenderTicketContext flattens a ticket into the plain-text block both
// the router and the solvers embed in their prompts. Metadata keys are
// sorted so prompts are stable for identical input.
func RenderTicketContext(id, subject, message string, metadata map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ticket ID: %s\n", id)
	fmt.Fprintf(&sb, "Subject: %s\n", subject)
	fmt.Fprintf(&sb, "Message: %s\n", message)

	if len(metadata) > 0 {
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", k, metadata[k])
		}
	}

	return sb.String()
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// ExtractJSON strips markdown code fences and leading/trailing prose
// that models often add around JSON output.
func ExtractJSON(text string) string {
	if matches := codeFenceRe.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first { or [ and last } or ]
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return strings.TrimSpace(text)
	}
	end := strings.LastIndexAny(text, "}]")
	if end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}
