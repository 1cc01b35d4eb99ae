package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/bugfix-arena.net/internal/config"
	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

// RoundCompleter completes rounds whose time is up
type RoundCompleter interface {
	AutoComplete(ctx context.Context, roundID int64) error
	ExpiredRounds(ctx context.Context, now time.Time) ([]*domain.Round, error)
}

// RoundScheduler completes ACTIVE rounds at their deadline. Timers live in memory; the periodic
// sweep picks up rounds whose timer was lost, e.g. across a restart.
type RoundScheduler struct {
	SchedulerCfg *config.ScheduleSvcCfg
	logger       primary.Logger
	now          func() time.Time

	mu        sync.Mutex
	timers    map[int64]*time.Timer
	ctx       context.Context
	completer RoundCompleter
}

func NewRoundScheduler(schedulerCfg *config.ScheduleSvcCfg, logger primary.Logger) *RoundScheduler {
	return &RoundScheduler{
		SchedulerCfg: schedulerCfg,
		logger:       logger,
		now:          time.Now,
		timers:       make(map[int64]*time.Timer),
		ctx:          context.Background(),
	}
}

func (s *RoundScheduler) Schedule(roundID int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[roundID]; ok {
		t.Stop()
	}
	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	s.timers[roundID] = time.AfterFunc(delay, func() { s.fire(roundID) })
	s.logger.Debug("Round timer scheduled", "roundId", roundID, "at", at)
}

func (s *RoundScheduler) Cancel(roundID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[roundID]; ok {
		t.Stop()
		delete(s.timers, roundID)
	}
}

// Pending returns the number of armed timers
func (s *RoundScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Start binds the completer and runs the sweep loop until ctx is cancelled
func (s *RoundScheduler) Start(ctx context.Context, completer RoundCompleter) {
	s.mu.Lock()
	s.ctx = ctx
	s.completer = completer
	s.mu.Unlock()

	s.sweep(ctx)

	ticker := time.NewTicker(s.SchedulerCfg.RoundSweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.stopAll()
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *RoundScheduler) fire(roundID int64) {
	s.mu.Lock()
	delete(s.timers, roundID)
	ctx, completer := s.ctx, s.completer
	s.mu.Unlock()

	if completer == nil || ctx.Err() != nil {
		return
	}
	if err := completer.AutoComplete(ctx, roundID); err != nil {
		s.logger.Error("Failed to complete round", "roundId", roundID, "error", err)
	}
}

func (s *RoundScheduler) sweep(ctx context.Context) {
	rounds, err := s.completer.ExpiredRounds(ctx, s.now())
	if err != nil {
		s.logger.Error("Failed to list expired rounds", "error", err)
		return
	}
	for _, round := range rounds {
		s.logger.Info("Completing expired round", "roundId", round.ID)
		s.Cancel(round.ID)
		if err := s.completer.AutoComplete(ctx, round.ID); err != nil {
			s.logger.Error("Failed to complete round", "roundId", round.ID, "error", err)
		}
	}
}

func (s *RoundScheduler) stopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
