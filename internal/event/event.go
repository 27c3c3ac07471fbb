package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrIgnored marks deliveries the bot deliberately does not act on.
var ErrIgnored = errors.New("event ignored")

// Type represents the type of comment event.
type Type string

const (
	TypeComment Type = "comment"
	TypeMention Type = "mention"
)

// Event represents a normalized comment event.
type Event struct {
	// Type is the event type.
	Type Type

	// Provider is the git provider (github, gitlab).
	Provider string

	// DeliveryID is the provider's id for the webhook delivery.
	DeliveryID string

	// Repository information.
	RepoOwner string
	RepoName  string

	// Number is the pull request, merge request or issue number the comment
	// belongs to.
	Number int

	// Comment information.
	CommentID     int64
	CommentBody   string
	CommentAuthor string
	DiscussionID  string // GitLab discussion thread, empty on GitHub

	// Timestamp is when the event was received.
	Timestamp time.Time

	// RawPayload is the original webhook payload.
	RawPayload []byte
}

// Key returns a unique key for this comment (used for debouncing redeliveries).
func (e *Event) Key() string {
	return e.Provider + "/" + e.RepoOwner + "/" + e.RepoName + "/" + fmt.Sprint(e.Number) + "/" + fmt.Sprint(e.CommentID)
}

// containsMention checks if the text mentions the bot.
func containsMention(text, mention string) bool {
	if mention == "" {
		return false
	}
	start, _ := indexFold(text, mention)
	return start >= 0
}

// MentionText removes every occurrence of the mention from text and trims the
// result. Matching is case-insensitive.
func MentionText(text, mention string) string {
	if mention == "" {
		return strings.TrimSpace(text)
	}

	var b strings.Builder
	for {
		start, end := indexFold(text, mention)
		if start < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:start])
		text = text[end:]
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// indexFold returns the byte range of the first case-insensitive match of
// substr in s, or -1, -1. Windows are measured in runes of s, so case
// mappings that change the encoded length never split a rune.
func indexFold(s, substr string) (int, int) {
	n := utf8.RuneCountInString(substr)
	for i := range s {
		j := i
		for k := 0; k < n && j < len(s); k++ {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
		}
		if strings.EqualFold(s[i:j], substr) {
			return i, j
		}
	}
	return -1, -1
}

// splitPath splits an owner/repo path. GitLab subgroups stay in the owner.
func splitPath(path string) (string, string, error) {
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", fmt.Errorf("invalid repository path: %s", path)
	}
	return path[:i], path[i+1:], nil
}
