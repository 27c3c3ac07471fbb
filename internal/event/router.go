package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/drewdunne/nlibot/internal/config"
	xlog "github.com/drewdunne/nlibot/internal/log"
	"github.com/drewdunne/nlibot/internal/metrics"
	"github.com/drewdunne/nlibot/internal/nli"
)

// Handler processes a routed event. intent is nil when the NLI service could
// not interpret the comment.
type Handler func(ctx context.Context, event *Event, intent *nli.Intent) error

// Router filters comment events, interprets their text and hands the result
// to a Handler.
type Router struct {
	cfg         *config.Config
	handler     Handler
	debouncer   *Debouncer
	interpreter nli.Interpreter
	logger      zerolog.Logger
}

// NewRouter creates a new event router.
func NewRouter(cfg *config.Config, handler Handler, interpreter nli.Interpreter) *Router {
	debounceWindow := time.Duration(cfg.Bot.DebounceSeconds) * time.Second
	if debounceWindow == 0 {
		debounceWindow = 10 * time.Second
	}
	return &Router{
		cfg:         cfg,
		handler:     handler,
		debouncer:   NewDebouncer(debounceWindow),
		interpreter: interpreter,
		logger:      xlog.WithComponent("router"),
	}
}

// Route processes an event through the routing pipeline.
func (r *Router) Route(ctx context.Context, event *Event) error {
	if !r.isEventEnabled(event.Type) {
		r.logger.Debug().Str("type", string(event.Type)).Msg("event type disabled")
		metrics.EventProcessed("disabled")
		return nil
	}

	// The bot's own replies mention it too.
	if r.isSelf(event.CommentAuthor) {
		metrics.EventProcessed("self")
		return nil
	}

	if !r.debouncer.ShouldProcess(event) {
		r.logger.Info().Str("key", event.Key()).Msg("event debounced")
		metrics.EventProcessed("debounced")
		return nil
	}

	text := event.CommentBody
	if event.Type == TypeMention {
		text = MentionText(text, r.cfg.Bot.Mention)
	}
	if text == "" {
		metrics.EventProcessed("empty")
		return nil
	}

	logger := r.logger.With().
		Str("request_id", uuid.NewString()).
		Str("key", event.Key()).
		Str("delivery_id", event.DeliveryID).
		Logger()

	intent, err := r.interpreter.Interpret(ctx, text)
	switch {
	case errors.Is(err, nli.ErrStatus):
		logger.Info().Err(err).Msg("no interpretation")
		metrics.EventProcessed("handled")
		return r.handler(ctx, event, nil)
	case err != nil:
		logger.Error().Err(err).Msg("interpretation failed")
		metrics.EventProcessed("error")
		return fmt.Errorf("interpreting comment %s: %w", event.Key(), err)
	}

	logger.Info().Str("action", intent.Action).Msg("comment interpreted")
	metrics.EventProcessed("handled")
	return r.handler(ctx, event, &intent)
}

func (r *Router) isEventEnabled(t Type) bool {
	switch t {
	case TypeComment:
		return r.cfg.Events.Comment
	case TypeMention:
		return r.cfg.Events.Mention
	default:
		return false
	}
}

func (r *Router) isSelf(author string) bool {
	name := strings.TrimPrefix(r.cfg.Bot.Mention, "@")
	return name != "" && strings.EqualFold(author, name)
}
