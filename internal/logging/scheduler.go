package logging

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	xlog "github.com/drewdunne/nlibot/internal/log"
)

// CleanupScheduler runs a Cleaner periodically.
type CleanupScheduler struct {
	cleaner  *Cleaner
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	logger   zerolog.Logger
}

// NewCleanupScheduler creates a scheduler; call Start to begin.
func NewCleanupScheduler(cleaner *Cleaner, interval time.Duration) *CleanupScheduler {
	return &CleanupScheduler{
		cleaner:  cleaner,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   xlog.WithComponent("transcripts"),
	}
}

// Start runs one cleanup immediately and then one per interval until Stop.
func (s *CleanupScheduler) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runCleanup()
		for {
			select {
			case <-ticker.C:
				s.runCleanup()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *CleanupScheduler) runCleanup() {
	deleted, err := s.cleaner.Cleanup()
	if err != nil {
		s.logger.Error().Err(err).Msg("transcript cleanup failed")
	} else if deleted > 0 {
		s.logger.Info().Int("deleted", deleted).Msg("cleaned up old transcripts")
	}
}

// Stop ends the schedule and waits for a running cleanup to finish.
// It must only be called after Start.
func (s *CleanupScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}
