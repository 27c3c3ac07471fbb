package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/drewdunne/nlibot/internal/provider"
	"github.com/google/go-github/v60/github"
)

// Ensure GitHubProvider implements provider.Provider.
var _ provider.Provider = (*GitHubProvider)(nil)

// GitHubProvider implements provider.Provider for GitHub.
type GitHubProvider struct {
	client *github.Client
}

// Option configures the GitHub provider.
type Option func(*GitHubProvider) error

// WithBaseURL sets a custom API base URL (GitHub Enterprise or tests).
func WithBaseURL(baseURL string) Option {
	return func(p *GitHubProvider) error {
		u, err := provider.ParseBaseURL(baseURL)
		if err != nil {
			return err
		}
		p.client.BaseURL = u
		return nil
	}
}

// New creates a new GitHub provider.
func New(token string, opts ...Option) (*GitHubProvider, error) {
	httpClient := &http.Client{
		Transport: &tokenTransport{token: token},
	}
	p := &GitHubProvider{client: github.NewClient(httpClient)}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("configuring github provider: %w", err)
		}
	}

	return p, nil
}

// tokenTransport adds authorization header to requests.
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// PostComment posts a comment on an issue or pull request. GitHub issue
// comments are not threaded, so DiscussionID is ignored.
func (p *GitHubProvider) PostComment(ctx context.Context, thread provider.Thread, body string) error {
	_, _, err := p.client.Issues.CreateComment(ctx, thread.Owner, thread.Repo, thread.Number, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}
