/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds LLM prompts from templates with named
placeholders.

Placeholders use the {{name}} syntax. Names must start with a letter and may
contain letters, digits and underscores. A prompt refuses to Build while any
placeholder is unbound.

Values come in two flavours:

  - BindStringLiteral accepts only untyped string constants written by the
    developer, so runtime data cannot be spliced in as free text.
  - BindJSON and BindYAML accept arbitrary data and marshal it, which keeps
    runtime data structurally delimited inside the prompt.

Binding returns a new Prompt and leaves the receiver untouched, so a
package-level template can be shared by concurrent runs:

	var system = promptbuilder.MustNewPrompt(`ROLE: {{role}}

	CONTEXT:
	{{context}}`)

	p, err := system.MustBindStringLiteral("role", "README writer").
		BindYAML("context", map[string]any{"tools": names})
	if err != nil {
		return err
	}
	text, err := p.Build()
*/
package promptbuilder
