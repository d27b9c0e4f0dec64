/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPromptPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template stringLiteral
		want     []string
		wantErr  string
	}{{
		name:     "no placeholders",
		template: "plain text",
		want:     nil,
	}, {
		name:     "repeated placeholder",
		template: "{{a}} and {{ a }} and {{b_2}}",
		want:     []string{"a", "b_2"},
	}, {
		name:     "unclosed",
		template: "hello {{name",
		wantErr:  "unclosed binding",
	}, {
		name:     "leading digit",
		template: "{{1abc}}",
		wantErr:  "invalid binding identifier",
	}, {
		name:     "empty name",
		template: "{{}}",
		wantErr:  "invalid binding identifier",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrompt(tt.template)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("NewPrompt(): got = %v, wanted error containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPrompt(): %v", err)
			}
			if diff := cmp.Diff(tt.want, p.Placeholders()); diff != "" {
				t.Errorf("Placeholders() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	base := MustNewPrompt(`ROLE: {{role}}
DATA:
{{data}}
CTX:
{{ctx}}`)

	p, err := base.MustBindStringLiteral("role", "writer").BindJSON("data", map[string]int{"n": 1})
	if err != nil {
		t.Fatalf("BindJSON(): %v", err)
	}
	p, err = p.BindYAML("ctx", map[string][]string{"tools": {"write_file"}})
	if err != nil {
		t.Fatalf("BindYAML(): %v", err)
	}

	got, err := p.Build()
	if err != nil {
		t.Fatalf("Build(): %v", err)
	}
	want := "ROLE: writer\nDATA:\n{\n  \"n\": 1\n}\nCTX:\ntools:\n    - write_file"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() (-want +got):\n%s", diff)
	}

	// The base prompt is not affected by binding.
	if _, err := base.Build(); err == nil || !strings.Contains(err.Error(), "unbound placeholder") {
		t.Errorf("base.Build(): got = %v, wanted unbound placeholder error", err)
	}
}

func TestBindErrors(t *testing.T) {
	p := MustNewPrompt("{{a}}")

	if _, err := p.BindStringLiteral("missing", "x"); err == nil {
		t.Error("binding unknown placeholder: got = nil, wanted error")
	}

	bound := p.MustBindStringLiteral("a", "x")
	if _, err := bound.BindStringLiteral("a", "y"); err == nil || !strings.Contains(err.Error(), "already bound") {
		t.Errorf("rebinding: got = %v, wanted already bound error", err)
	}

	bad, err := p.BindJSON("a", make(chan int))
	if err != nil {
		t.Fatalf("BindJSON(): %v", err)
	}
	if _, err := bad.Build(); err == nil || !strings.Contains(err.Error(), "marshal JSON") {
		t.Errorf("Build() with unmarshalable value: got = %v, wanted marshal error", err)
	}
}
