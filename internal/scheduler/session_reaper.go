// Package scheduler runs periodic maintenance jobs inside the API process
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// purgeTimeout bounds a single purge run
const purgeTimeout = time.Minute

// SessionPurger defines the session cleanup operation run by the reaper
type SessionPurger interface {
	// PurgeExpired deletes every expired session and returns how many were removed
	PurgeExpired(ctx context.Context) (int, error)
}

// SessionReaper purges expired sessions on a cron schedule
type SessionReaper struct {
	purger   SessionPurger
	schedule cron.Schedule
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionReaper creates a reaper for a standard cron expression or descriptor such as "@hourly"
func NewSessionReaper(purger SessionPurger, cronExpr string, logger *zap.Logger) (*SessionReaper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return &SessionReaper{
		purger:   purger,
		schedule: schedule,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start starts the reaper
func (s *SessionReaper) Start() {
	s.logger.Info("Session reaper started")
	go s.run()
}

// Stop stops the reaper and waits for a running purge to finish
func (s *SessionReaper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		<-s.done
		s.logger.Info("Session reaper stopped")
	})
}

// run executes the reaper loop
func (s *SessionReaper) run() {
	defer close(s.done)

	for {
		now := time.Now()
		timer := time.NewTimer(s.schedule.Next(now).Sub(now))

		select {
		case <-timer.C:
			s.purge()
		case <-s.stopChan:
			timer.Stop()
			return
		}
	}
}

// purge runs one cleanup; failures are logged and retried on the next tick
func (s *SessionReaper) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	count, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to purge expired sessions", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("Purged expired sessions", zap.Int("count", count))
	}
}
