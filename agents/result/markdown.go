/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import "strings"

// fenceLanguages are the info strings treated as a wrapped document.
var fenceLanguages = map[string]bool{"": true, "markdown": true, "md": true}

// ExtractMarkdown returns reply without an outer ```markdown (or ```md, or
// bare ```) fence. The fence is only removed when it opens on the first
// line and closes on the last; anything else is returned trimmed.
func ExtractMarkdown(reply string) string {
	text := strings.TrimSpace(reply)
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	first := strings.TrimSpace(lines[0])
	last := strings.TrimSpace(lines[len(lines)-1])
	lang, ok := strings.CutPrefix(first, "```")
	if !ok || last != "```" || !fenceLanguages[strings.ToLower(strings.TrimSpace(lang))] {
		return text
	}

	body := lines[1 : len(lines)-1]
	// A bare fence around a document that itself ends in a fenced block is
	// ambiguous; keep it.
	if lang == "" && openFences(body)%2 != 0 {
		return text
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

func openFences(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			n++
		}
	}
	return n
}
