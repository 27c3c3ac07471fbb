package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/drewdunne/nlibot/internal/webhook"
)

// gitHubPayload is the subset of the issue_comment payload the bot reads.
type gitHubPayload struct {
	Action string `json:"action"`
	Issue  struct {
		Number int `json:"number"`
	} `json:"issue"`
	Comment struct {
		ID   int64  `json:"id"`
		Body string `json:"body"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// NormalizeGitHubEvent converts a GitHub webhook event to a normalized Event.
// Only newly created issue and pull request comments are handled.
func NormalizeGitHubEvent(ghEvent *webhook.GitHubEvent, mention string) (*Event, error) {
	if ghEvent.EventType != "issue_comment" {
		return nil, fmt.Errorf("%w: github event type %s", ErrIgnored, ghEvent.EventType)
	}

	var payload gitHubPayload
	if err := json.Unmarshal(ghEvent.RawPayload, &payload); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}
	if payload.Action != "created" {
		return nil, fmt.Errorf("%w: issue_comment action %s", ErrIgnored, payload.Action)
	}

	owner, repo, err := splitPath(payload.Repository.FullName)
	if err != nil {
		return nil, err
	}

	event := &Event{
		Type:          TypeComment,
		Provider:      "github",
		DeliveryID:    ghEvent.DeliveryID,
		RepoOwner:     owner,
		RepoName:      repo,
		Number:        payload.Issue.Number,
		CommentID:     payload.Comment.ID,
		CommentBody:   payload.Comment.Body,
		CommentAuthor: payload.Comment.User.Login,
		Timestamp:     time.Now(),
		RawPayload:    ghEvent.RawPayload,
	}
	if containsMention(payload.Comment.Body, mention) {
		event.Type = TypeMention
	}

	return event, nil
}
