package gitlab

import (
	"context"
	"fmt"

	"github.com/drewdunne/nlibot/internal/provider"
	"github.com/xanzy/go-gitlab"
)

// Ensure GitLabProvider implements provider.Provider.
var _ provider.Provider = (*GitLabProvider)(nil)

// GitLabProvider implements provider.Provider for GitLab.
type GitLabProvider struct {
	client  *gitlab.Client
	baseURL string
}

// Option configures the GitLab provider.
type Option func(*GitLabProvider) error

// WithBaseURL sets a custom instance URL (self-managed GitLab or tests).
func WithBaseURL(baseURL string) Option {
	return func(p *GitLabProvider) error {
		u, err := provider.ParseBaseURL(baseURL)
		if err != nil {
			return err
		}
		p.baseURL = u.JoinPath("api/v4").String()
		return nil
	}
}

// New creates a new GitLab provider.
func New(token string, opts ...Option) (*GitLabProvider, error) {
	p := &GitLabProvider{}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("configuring gitlab provider: %w", err)
		}
	}

	var clientOpts []gitlab.ClientOptionFunc
	if p.baseURL != "" {
		clientOpts = append(clientOpts, gitlab.WithBaseURL(p.baseURL))
	}
	client, err := gitlab.NewClient(token, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating gitlab client: %w", err)
	}
	p.client = client

	return p, nil
}

// Name returns the provider name.
func (p *GitLabProvider) Name() string {
	return "gitlab"
}

// projectPath joins owner and repo into the project id go-gitlab escapes.
func projectPath(owner, repo string) string {
	return owner + "/" + repo
}

// PostComment posts a note on a merge request, inside the discussion when one
// is given.
func (p *GitLabProvider) PostComment(ctx context.Context, thread provider.Thread, body string) error {
	pid := projectPath(thread.Owner, thread.Repo)

	if thread.DiscussionID != "" {
		_, _, err := p.client.Discussions.AddMergeRequestDiscussionNote(pid, thread.Number, thread.DiscussionID,
			&gitlab.AddMergeRequestDiscussionNoteOptions{Body: &body},
			gitlab.WithContext(ctx),
		)
		if err != nil {
			return fmt.Errorf("replying to discussion: %w", err)
		}
		return nil
	}

	_, _, err := p.client.Notes.CreateMergeRequestNote(pid, thread.Number,
		&gitlab.CreateMergeRequestNoteOptions{Body: &body},
		gitlab.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("posting comment: %w", err)
	}
	return nil
}
