/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import "testing"

func TestExtractMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{{
		name:  "plain document",
		input: "# widget\n\nA widget.\n",
		want:  "# widget\n\nA widget.",
	}, {
		name:  "markdown fence",
		input: "```markdown\n# widget\n\nA widget.\n```",
		want:  "# widget\n\nA widget.",
	}, {
		name:  "md fence with surrounding space",
		input: "\n  ```md\n# widget\n```\n\n",
		want:  "# widget",
	}, {
		name:  "bare fence",
		input: "```\n# widget\n```",
		want:  "# widget",
	}, {
		name:  "inner code blocks survive",
		input: "```markdown\n# widget\n\n```bash\ngo install ./...\n```\n```",
		want:  "# widget\n\n```bash\ngo install ./...\n```",
	}, {
		name:  "document ending in a code block",
		input: "# widget\n\n```bash\nmake\n```",
		want:  "# widget\n\n```bash\nmake\n```",
	}, {
		name:  "other language fence is kept",
		input: "```json\n{\"a\": 1}\n```",
		want:  "```json\n{\"a\": 1}\n```",
	}, {
		name:  "single line",
		input: "```",
		want:  "```",
	}, {
		name:  "empty",
		input: "",
		want:  "",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractMarkdown(tc.input); got != tc.want {
				t.Errorf("ExtractMarkdown(): got = %q, wanted = %q", got, tc.want)
			}
		})
	}
}
