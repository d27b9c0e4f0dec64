/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
	return path
}

func TestLoadDefault(t *testing.T) {
	cfg, path := load(context.Background(), []string{filepath.Join(t.TempDir(), FileName)})
	if path != "" {
		t.Errorf("path: got = %q, wanted empty", path)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("load() (-want +got):\n%s", diff)
	}
	if cfg.Deployment.URL != "http://127.0.0.1:3773" {
		t.Errorf("default url: got = %q, wanted = %q", cfg.Deployment.URL, "http://127.0.0.1:3773")
	}
}

func TestLoadSkipsMalformed(t *testing.T) {
	bad := writeConfig(t, t.TempDir(), `{"name": `)
	good := writeConfig(t, t.TempDir(), `{"name": "custom-agent", "deployment": {"url": "http://0.0.0.0:8080", "expose": false}}`)

	cfg, path := load(context.Background(), []string{bad, good})
	if path != good {
		t.Errorf("path: got = %q, wanted = %q", path, good)
	}
	if cfg.Name != "custom-agent" || cfg.Deployment.URL != "http://0.0.0.0:8080" || cfg.Deployment.Expose {
		t.Errorf("load(): got = %+v, wanted values from %s", cfg, good)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Version != "1.0.0" {
		t.Errorf("version: got = %q, wanted default 1.0.0", cfg.Version)
	}
}

func TestLoadUnreadable(t *testing.T) {
	// A directory with the config file name exists but cannot be read as a file.
	dir := filepath.Join(t.TempDir(), FileName)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Mkdir() = %v", err)
	}
	cfg, path := load(context.Background(), []string{dir})
	if path != "" || cfg.Name != "readme-generator-agent" {
		t.Errorf("load(): got = %q, %q, wanted default", path, cfg.Name)
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("/etc/agent.json")
	if len(got) < 2 || got[0] != "/etc/agent.json" {
		t.Fatalf("Candidates(): got = %v, wanted explicit path first", got)
	}
	wd, _ := os.Getwd()
	if last := got[len(got)-1]; last != filepath.Join(wd, FileName) {
		t.Errorf("last candidate: got = %q, wanted working directory", last)
	}
}

func TestListenAddr(t *testing.T) {
	for _, tc := range []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "http://127.0.0.1:3773", want: "127.0.0.1:3773"},
		{url: "http://localhost", want: "localhost:80"},
		{url: "https://agent.example.com", want: "agent.example.com:443"},
		{url: "127.0.0.1:3773", wantErr: true},
	} {
		got, err := Deployment{URL: tc.url}.ListenAddr()
		if (err != nil) != tc.wantErr {
			t.Errorf("ListenAddr(%q) error: got = %v, wanted error = %v", tc.url, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ListenAddr(%q): got = %q, wanted = %q", tc.url, got, tc.want)
		}
	}
}

func TestLoadCredentials(t *testing.T) {
	env := envconfig.MapLookuper(map[string]string{
		"OPENROUTER_API_KEY": "sk-or-env",
		"MODEL_NAME":         "anthropic/claude-3.5-sonnet",
	})

	got, err := loadCredentials(context.Background(), map[string]string{
		"MODEL_NAME":          "meta-llama/llama-3-70b",
		"GITHUB_ACCESS_TOKEN": "ghp_flag",
		"MEM0_API_KEY":        "",
	}, env)
	if err != nil {
		t.Fatalf("loadCredentials() = %v", err)
	}
	want := Credentials{
		OpenRouterAPIKey:  "sk-or-env",
		GitHubAccessToken: "ghp_flag",
		ModelName:         "meta-llama/llama-3-70b",
		OutputDir:         ".",
		Mem0UserID:        "readme-generator-agent",
		LogLevel:          "info",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadCredentials() (-want +got):\n%s", diff)
	}
}

func TestLoadCredentialsDefaults(t *testing.T) {
	got, err := loadCredentials(context.Background(), nil, envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("loadCredentials() = %v", err)
	}
	if got.ModelName != "openai/gpt-4o" {
		t.Errorf("ModelName: got = %q, wanted = %q", got.ModelName, "openai/gpt-4o")
	}
}
