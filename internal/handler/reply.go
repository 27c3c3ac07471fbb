package handler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/drewdunne/nlibot/internal/event"
	xlog "github.com/drewdunne/nlibot/internal/log"
	"github.com/drewdunne/nlibot/internal/logging"
	"github.com/drewdunne/nlibot/internal/metrics"
	"github.com/drewdunne/nlibot/internal/nli"
	"github.com/drewdunne/nlibot/internal/provider"
)

// ProviderSource looks up providers by name.
type ProviderSource interface {
	Get(name string) provider.Provider
}

// ReplyHandler answers interpreted comments in their thread.
type ReplyHandler struct {
	providers     ProviderSource
	transcripts   *logging.Writer
	fallbackReply string
	logger        zerolog.Logger
}

// NewReplyHandler creates a new reply handler. transcripts may be nil.
func NewReplyHandler(providers ProviderSource, transcripts *logging.Writer, fallbackReply string) *ReplyHandler {
	return &ReplyHandler{
		providers:     providers,
		transcripts:   transcripts,
		fallbackReply: fallbackReply,
		logger:        xlog.WithComponent("reply"),
	}
}

// Handle posts the reply for an interpreted comment and records it.
func (h *ReplyHandler) Handle(ctx context.Context, evt *event.Event, intent *nli.Intent) error {
	p := h.providers.Get(evt.Provider)
	if p == nil {
		return fmt.Errorf("no provider configured for %s", evt.Provider)
	}

	reply := FormatReply(intent, h.fallbackReply)
	if reply == "" {
		return nil
	}

	thread := provider.Thread{
		Owner:        evt.RepoOwner,
		Repo:         evt.RepoName,
		Number:       evt.Number,
		DiscussionID: evt.DiscussionID,
	}
	err := p.PostComment(ctx, thread, reply)
	metrics.ReplyPosted(evt.Provider, err == nil)
	if err != nil {
		return fmt.Errorf("replying to %s: %w", evt.Key(), err)
	}

	h.record(evt, intent, reply)

	h.logger.Info().
		Str("key", evt.Key()).
		Str("author", evt.CommentAuthor).
		Msg("reply posted")
	return nil
}

func (h *ReplyHandler) record(evt *event.Event, intent *nli.Intent, reply string) {
	if h.transcripts == nil {
		return
	}
	entry := logging.Entry{
		Time:      time.Now().UTC(),
		Provider:  evt.Provider,
		RepoOwner: evt.RepoOwner,
		RepoName:  evt.RepoName,
		Number:    evt.Number,
		CommentID: evt.CommentID,
		Author:    evt.CommentAuthor,
		Text:      evt.CommentBody,
		Intent:    intent,
		Reply:     reply,
	}
	if _, err := h.transcripts.Record(entry); err != nil {
		metrics.TranscriptWriteFailed()
		h.logger.Warn().Err(err).Str("key", evt.Key()).Msg("failed to record transcript")
	}
}

// FormatReply renders an intent as a comment. The service's own response text
// wins; otherwise the action and its parameters are listed. A nil intent
// yields the fallback.
func FormatReply(intent *nli.Intent, fallback string) string {
	if intent == nil {
		return fallback
	}
	if intent.Response != "" {
		return intent.Response
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Action: `%s`", intent.Action)

	names := make([]string, 0, len(intent.Parameters))
	for name := range intent.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n- `%s`: %s", name, intent.Parameters[name])
	}
	return b.String()
}
