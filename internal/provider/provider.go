package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Thread identifies where a reply is posted.
type Thread struct {
	Owner  string
	Repo   string
	Number int // PR/issue number (GitHub) or MR IID (GitLab)

	// DiscussionID answers inside an existing discussion when the provider
	// supports threads. Empty posts a top-level comment.
	DiscussionID string
}

// Provider defines the git provider operations the bot needs.
type Provider interface {
	// Name returns the provider name (github, gitlab).
	Name() string

	// PostComment posts a comment in the given thread.
	PostComment(ctx context.Context, thread Thread, body string) error
}

// ParseBaseURL validates a configured API base URL. The result always has a
// trailing slash on its path.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
