/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package readme

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/readmeagent/agents/conversation"
	"chainguard.dev/readmeagent/agents/executor/openaiexecutor"
	"chainguard.dev/readmeagent/agents/metrics"
	"chainguard.dev/readmeagent/agents/promptbuilder"
	"chainguard.dev/readmeagent/agents/toolcall"
	"chainguard.dev/readmeagent/config"
	"chainguard.dev/readmeagent/integrations/githubrepo"
	"chainguard.dev/readmeagent/integrations/localfs"
	"chainguard.dev/readmeagent/integrations/mem0"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Capability group names.
const (
	CapabilityRepository = "github"
	CapabilityFileSystem = "filesystem"
	CapabilityMemory     = "memory"
)

// Capability reports whether a tool group is enabled.
type Capability struct {
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Reason  string   `json:"reason,omitempty"` // why it is disabled
	Tools   []string `json:"tools,omitempty"`
}

// Binding is a fully constructed agent.
type Binding struct {
	model        ModelSelection
	executor     openaiexecutor.Interface
	tools        map[string]toolcall.Tool[*openaiexecutor.Result]
	capabilities []Capability
	closers      []func() error
	now          func() time.Time
}

// Option configures New.
type Option func(*options)

type options struct {
	clientOpts   []option.RequestOption
	executorOpts []openaiexecutor.Option
	githubOpts   []githubrepo.Option
	mem0Opts     []mem0.Option
	now          func() time.Time
}

// WithClientOptions adds request options to the OpenAI client, after the
// ones derived from the credentials.
func WithClientOptions(opts ...option.RequestOption) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, opts...) }
}

// WithExecutorOptions adds executor options.
func WithExecutorOptions(opts ...openaiexecutor.Option) Option {
	return func(o *options) { o.executorOpts = append(o.executorOpts, opts...) }
}

// WithGitHubOptions configures the GitHub client.
func WithGitHubOptions(opts ...githubrepo.Option) Option {
	return func(o *options) { o.githubOpts = append(o.githubOpts, opts...) }
}

// WithMem0Options configures the Mem0 client.
func WithMem0Options(opts ...mem0.Option) Option {
	return func(o *options) { o.mem0Opts = append(o.mem0Opts, opts...) }
}

// New constructs the agent from creds.
func New(ctx context.Context, creds config.Credentials, opts ...Option) (_ *Binding, err error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	model, err := SelectModel(creds)
	if err != nil {
		return nil, err
	}
	clog.InfoContextf(ctx, "Using %s model %s", model.Backend, model.Model)

	b := &Binding{model: model, now: o.now}
	defer func() {
		if err != nil {
			_ = b.Close()
		}
	}()

	repoTools, err := b.repositoryTools(ctx, creds, o.githubOpts)
	if err != nil {
		return nil, err
	}
	fileTools, err := b.fileSystemTools(ctx, creds)
	if err != nil {
		return nil, err
	}
	memTools, err := b.memoryTools(ctx, creds, o.mem0Opts)
	if err != nil {
		return nil, err
	}
	if b.tools, err = toolcall.Merge(repoTools, fileTools, memTools); err != nil {
		return nil, err
	}

	if _, err := b.systemPrompt(); err != nil {
		return nil, err
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(model.APIKey),
		option.WithMaxRetries(0),
	}
	if model.BaseURL != "" {
		clientOpts = append(clientOpts,
			option.WithBaseURL(model.BaseURL),
			option.WithHeader("X-Title", attributionTitle))
	}
	clientOpts = append(clientOpts, o.clientOpts...)

	execOpts := append([]openaiexecutor.Option{
		openaiexecutor.WithModel(model.Model),
		openaiexecutor.WithBackend(model.Backend),
		openaiexecutor.WithAttributeEnricher(metrics.ExecutionEnricher),
	}, o.executorOpts...)

	if b.executor, err = openaiexecutor.New(openai.NewClient(clientOpts...), execOpts...); err != nil {
		return nil, fmt.Errorf("creating executor: %w", err)
	}

	clog.InfoContextf(ctx, "README generator agent initialized with %d tools", len(b.tools))
	return b, nil
}

func (b *Binding) repositoryTools(ctx context.Context, creds config.Credentials, opts []githubrepo.Option) (map[string]toolcall.Tool[*openaiexecutor.Result], error) {
	if creds.GitHubAccessToken == "" {
		clog.WarnContextf(ctx, "GITHUB_ACCESS_TOKEN not set, GitHub repository access disabled (get a token from https://github.com/settings/tokens)")
		b.capabilities = append(b.capabilities, Capability{Name: CapabilityRepository, Reason: "GITHUB_ACCESS_TOKEN not set"})
		return nil, nil
	}
	gh, err := githubrepo.New(ctx, creds.GitHubAccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}
	b.closers = append(b.closers, gh.Close)
	tools := toolcall.NewRepositoryToolsProvider[*openaiexecutor.Result]().Tools(gh.Callbacks())
	b.capabilities = append(b.capabilities, Capability{Name: CapabilityRepository, Enabled: true, Tools: toolcall.Names(tools)})
	clog.InfoContextf(ctx, "Added GitHub repository tools")
	return tools, nil
}

func (b *Binding) fileSystemTools(ctx context.Context, creds config.Credentials) (map[string]toolcall.Tool[*openaiexecutor.Result], error) {
	dir, err := localfs.New(creds.OutputDir)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, dir.Close)
	tools := toolcall.NewFileSystemToolsProvider[*openaiexecutor.Result]().Tools(dir.Callbacks())
	b.capabilities = append(b.capabilities, Capability{Name: CapabilityFileSystem, Enabled: true, Tools: toolcall.Names(tools)})
	clog.InfoContextf(ctx, "Added local file system tools rooted at %s", dir.Path())
	return tools, nil
}

func (b *Binding) memoryTools(ctx context.Context, creds config.Credentials, opts []mem0.Option) (map[string]toolcall.Tool[*openaiexecutor.Result], error) {
	if creds.Mem0APIKey == "" {
		clog.WarnContextf(ctx, "MEM0_API_KEY not set, memory features disabled")
		b.capabilities = append(b.capabilities, Capability{Name: CapabilityMemory, Reason: "MEM0_API_KEY not set"})
		return nil, nil
	}
	userID := creds.Mem0UserID
	if userID == "" {
		userID = "readme-generator-agent"
	}
	mc, err := mem0.New(creds.Mem0APIKey, userID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Mem0 client: %w", err)
	}
	b.closers = append(b.closers, mc.Close)
	tools := toolcall.NewMemoryToolsProvider[*openaiexecutor.Result]().Tools(mc.Callbacks())
	b.capabilities = append(b.capabilities, Capability{Name: CapabilityMemory, Enabled: true, Tools: toolcall.Names(tools)})
	clog.InfoContextf(ctx, "Added Mem0 memory tools")
	return tools, nil
}

// Plan reports which capability groups New would enable for creds,
// without constructing any client. Tool names are left empty.
func Plan(creds config.Credentials) []Capability {
	plan := []Capability{{Name: CapabilityRepository}, {Name: CapabilityFileSystem, Enabled: true}, {Name: CapabilityMemory}}
	if creds.GitHubAccessToken != "" {
		plan[0].Enabled = true
	} else {
		plan[0].Reason = "GITHUB_ACCESS_TOKEN not set"
	}
	if creds.Mem0APIKey != "" {
		plan[2].Enabled = true
	} else {
		plan[2].Reason = "MEM0_API_KEY not set"
	}
	return plan
}

// Model returns the selected backend and model.
func (b *Binding) Model() ModelSelection {
	return b.model
}

// Capabilities reports every tool group and whether it is enabled.
func (b *Binding) Capabilities() []Capability {
	return b.capabilities
}

// ToolNames returns the names of all enabled tools.
func (b *Binding) ToolNames() []string {
	return toolcall.Names(b.tools)
}

// systemPrompt binds the current time and tool names into the system prompt.
func (b *Binding) systemPrompt() (*promptbuilder.Prompt, error) {
	p, err := promptbuilder.MustNewPrompt(systemPrompt).BindYAML("context", map[string]any{
		"current_time": b.now().UTC().Format(time.RFC3339),
		"tools":        toolcall.Names(b.tools),
	})
	if err != nil {
		return nil, fmt.Errorf("binding system prompt: %w", err)
	}
	return p, nil
}

// Run forwards conv to the model with the assembled tools. The system
// prompt is bound per run so current_time reflects the request.
func (b *Binding) Run(ctx context.Context, conv conversation.Conversation) (*openaiexecutor.Result, error) {
	system, err := b.systemPrompt()
	if err != nil {
		return nil, err
	}
	return b.executor.Execute(ctx, conv, b.tools, openaiexecutor.WithCallInstructions(system))
}

// Close releases the integration clients.
func (b *Binding) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	b.closers = nil
	return errors.Join(errs...)
}
