package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/drewdunne/nlibot/internal/webhook"
)

type gitLabPayload struct {
	ObjectKind       string `json:"object_kind"`
	ObjectAttributes struct {
		ID           int64  `json:"id"`
		Note         string `json:"note"`
		NoteableType string `json:"noteable_type"`
		DiscussionID string `json:"discussion_id"`
	} `json:"object_attributes"`
	MergeRequest struct {
		IID int `json:"iid"`
	} `json:"merge_request"`
	Project struct {
		PathWithNamespace string `json:"path_with_namespace"`
	} `json:"project"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// NormalizeGitLabEvent converts a GitLab note event on a merge request to a
// normalized Event.
func NormalizeGitLabEvent(glEvent *webhook.GitLabEvent, mention string) (*Event, error) {
	var payload gitLabPayload
	if err := json.Unmarshal(glEvent.RawPayload, &payload); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}

	if payload.ObjectKind != "note" {
		return nil, fmt.Errorf("%w: gitlab object_kind %s", ErrIgnored, payload.ObjectKind)
	}
	if payload.ObjectAttributes.NoteableType != "MergeRequest" {
		return nil, fmt.Errorf("%w: note on %s", ErrIgnored, payload.ObjectAttributes.NoteableType)
	}

	owner, repo, err := splitPath(payload.Project.PathWithNamespace)
	if err != nil {
		return nil, err
	}

	event := &Event{
		Type:          TypeComment,
		Provider:      "gitlab",
		DeliveryID:    glEvent.DeliveryID,
		RepoOwner:     owner,
		RepoName:      repo,
		Number:        payload.MergeRequest.IID,
		CommentID:     payload.ObjectAttributes.ID,
		CommentBody:   payload.ObjectAttributes.Note,
		CommentAuthor: payload.User.Username,
		DiscussionID:  payload.ObjectAttributes.DiscussionID,
		Timestamp:     time.Now(),
		RawPayload:    glEvent.RawPayload,
	}
	if containsMention(payload.ObjectAttributes.Note, mention) {
		event.Type = TypeMention
	}

	return event, nil
}
