/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubrepo

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"chainguard.dev/readmeagent/agents/toolcall/callbacks"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// maxLanguages bounds the GraphQL language query.
const maxLanguages = 20

// Cache defaults.
const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 10 * time.Minute
)

// Client reads repositories through GitHub's REST and GraphQL APIs.
// Repository metadata and file contents are cached for a short time, so a
// model reading the same file twice in one run costs one request.
type Client struct {
	rest *github.Client
	gql  *githubv4.Client
	http *http.Client

	repos *expirable.LRU[string, *callbacks.Repository]
	files *expirable.LRU[string, string]
}

// Option configures a Client.
type Option func(*options)

type options struct {
	base       *http.Client
	restURL    string
	graphqlURL string
	cacheSize  int
	cacheTTL   time.Duration
}

// WithHTTPClient sets the client whose transport carries the authenticated
// requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.base = c }
}

// WithEndpoints points the client at a different REST base URL and GraphQL
// endpoint, such as a GitHub Enterprise server.
func WithEndpoints(restURL, graphqlURL string) Option {
	return func(o *options) {
		o.restURL = restURL
		o.graphqlURL = graphqlURL
	}
}

// WithCache sets the number of cached entries per kind and their lifetime.
// A size of zero disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// New returns a client authenticated with token.
func New(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errors.New("github token is required")
	}
	o := options{base: &http.Client{}, cacheSize: DefaultCacheSize, cacheTTL: DefaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	c := &Client{
		rest: github.NewClient(httpClient),
		gql:  githubv4.NewClient(httpClient),
		http: httpClient,
	}
	if o.cacheSize > 0 {
		c.repos = expirable.NewLRU[string, *callbacks.Repository](o.cacheSize, nil, o.cacheTTL)
		c.files = expirable.NewLRU[string, string](o.cacheSize, nil, o.cacheTTL)
	}
	if o.restURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.restURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse REST URL: %w", err)
		}
		c.rest.BaseURL = u
	}
	if o.graphqlURL != "" {
		c.gql = githubv4.NewEnterpriseClient(o.graphqlURL, httpClient)
	}
	return c, nil
}

// Callbacks exposes the client as repository tool callbacks.
func (c *Client) Callbacks() callbacks.RepositoryCallbacks {
	return callbacks.RepositoryCallbacks{
		GetRepository:  c.Repository,
		GetLanguages:   c.Languages,
		ListContents:   c.Contents,
		GetFileContent: c.FileContent,
		GetReadme:      c.Readme,
	}
}

// Close releases idle connections.
func (c *Client) Close() error {
	if c.repos != nil {
		c.repos.Purge()
		c.files.Purge()
	}
	c.http.CloseIdleConnections()
	return nil
}

// Repository returns the metadata of owner/repo.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*callbacks.Repository, error) {
	key := owner + "/" + repo
	if c.repos != nil {
		if r, ok := c.repos.Get(key); ok {
			return r, nil
		}
	}
	r, _, err := c.rest.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}
	meta := &callbacks.Repository{
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
		Homepage:      r.GetHomepage(),
		License:       r.GetLicense().GetSPDXID(),
		Topics:        r.Topics,
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Archived:      r.GetArchived(),
	}
	if c.repos != nil {
		c.repos.Add(key, meta)
	}
	return meta, nil
}

// Languages returns the repository languages ordered by size. It queries
// GraphQL and falls back to the REST endpoint when that fails.
func (c *Client) Languages(ctx context.Context, owner, repo string) ([]callbacks.Language, error) {
	var query struct {
		Repository struct {
			Languages struct {
				Edges []struct {
					Size int
					Node struct {
						Name string
					}
				}
			} `graphql:"languages(first: $first, orderBy: {field: SIZE, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}
	variables := map[string]any{
		"owner": githubv4.String(owner),
		"repo":  githubv4.String(repo),
		"first": githubv4.Int(maxLanguages),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		clog.FromContext(ctx).With("error", err).Warn("GraphQL language query failed, using REST")
		return c.restLanguages(ctx, owner, repo)
	}

	langs := make([]callbacks.Language, 0, len(query.Repository.Languages.Edges))
	for _, e := range query.Repository.Languages.Edges {
		langs = append(langs, callbacks.Language{Name: e.Node.Name, Bytes: int64(e.Size)})
	}
	return langs, nil
}

func (c *Client) restLanguages(ctx context.Context, owner, repo string) ([]callbacks.Language, error) {
	byName, _, err := c.rest.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list languages %s/%s: %w", owner, repo, err)
	}
	langs := make([]callbacks.Language, 0, len(byName))
	for name, size := range byName {
		langs = append(langs, callbacks.Language{Name: name, Bytes: int64(size)})
	}
	slices.SortFunc(langs, func(a, b callbacks.Language) int {
		return cmp.Or(cmp.Compare(b.Bytes, a.Bytes), strings.Compare(a.Name, b.Name))
	})
	return langs, nil
}

// Contents lists the directory at path on the default branch.
func (c *Client) Contents(ctx context.Context, owner, repo, path string) ([]callbacks.Entry, error) {
	file, dir, _, err := c.rest.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list contents %s/%s/%s: %w", owner, repo, path, err)
	}
	if file != nil {
		return nil, fmt.Errorf("%s is a file, not a directory", path)
	}
	entries := make([]callbacks.Entry, 0, len(dir))
	for _, d := range dir {
		entries = append(entries, callbacks.Entry{
			Name: d.GetName(),
			Path: d.GetPath(),
			Type: d.GetType(),
			Size: d.GetSize(),
		})
	}
	return entries, nil
}

// FileContent returns the decoded content of the file at path.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	key := owner + "/" + repo + ":" + path
	if c.files != nil {
		if content, ok := c.files.Get(key); ok {
			clog.FromContext(ctx).Debugf("Serving %s from cache", key)
			return content, nil
		}
	}
	file, _, _, err := c.rest.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("get file %s/%s/%s: %w", owner, repo, path, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	if c.files != nil {
		c.files.Add(key, content)
	}
	return content, nil
}

// Readme returns the decoded content of the repository README.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	readme, _, err := c.rest.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("%s/%s has no README", owner, repo)
		}
		return "", fmt.Errorf("get readme %s/%s: %w", owner, repo, err)
	}
	content, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode readme: %w", err)
	}
	return content, nil
}
