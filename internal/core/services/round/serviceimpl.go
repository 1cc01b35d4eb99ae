package round

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/core/services/publisher"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ IRoundService = (*RoundService)(nil)

type nopTimer struct{}

func (nopTimer) Schedule(int64, time.Time) {}
func (nopTimer) Cancel(int64)              {}

type RoundService struct {
	rounds    secondary.RoundRepository
	publisher publisher.ILivePublisher
	timer     Timer
	logger    primary.Logger
	now       func() time.Time
}

func NewRoundService(
	rounds secondary.RoundRepository,
	publisher publisher.ILivePublisher,
	logger primary.Logger,
) *RoundService {
	return &RoundService{
		rounds:    rounds,
		publisher: publisher,
		timer:     nopTimer{},
		logger:    logger,
		now:       time.Now,
	}
}

// SetTimer sets the timer used to complete started rounds
func (s *RoundService) SetTimer(timer Timer) {
	if timer != nil {
		s.timer = timer
	}
}

func (s *RoundService) Create(ctx context.Context, cmd CreateRoundCommand) (*domain.Round, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	switch {
	case cmd.RoundNumber <= 0:
		return nil, fmt.Errorf("%w: roundNumber must be positive", errs.ErrValidation)
	case cmd.Name == "":
		return nil, fmt.Errorf("%w: name is required", errs.ErrValidation)
	case cmd.DurationMinutes <= 0:
		return nil, fmt.Errorf("%w: duration must be positive", errs.ErrValidation)
	case cmd.Weight <= 0:
		return nil, fmt.Errorf("%w: weight must be positive", errs.ErrValidation)
	}

	round := &domain.Round{
		RoundNumber:     cmd.RoundNumber,
		Name:            cmd.Name,
		DurationMinutes: cmd.DurationMinutes,
		Weight:          cmd.Weight,
		Status:          domain.RoundStatusLocked,
	}
	if err := s.rounds.CreateRound(ctx, round); err != nil {
		s.logger.Error("Failed to create round", "roundNumber", cmd.RoundNumber, "error", err)
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	s.logger.Info("Round created", "roundId", round.ID, "roundNumber", round.RoundNumber)
	return round, nil
}

func (s *RoundService) Get(ctx context.Context, roundID int64) (*domain.Round, error) {
	round, err := s.rounds.GetRound(ctx, roundID)
	if err != nil {
		s.logger.Error("Failed to get round", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, errs.ErrRoundNotFound
	}
	return round, nil
}

func (s *RoundService) List(ctx context.Context) ([]*domain.Round, error) {
	rounds, err := s.rounds.ListRounds(ctx)
	if err != nil {
		s.logger.Error("Failed to list rounds", "error", err)
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func (s *RoundService) Delete(ctx context.Context, roundID int64) error {
	round, err := s.Get(ctx, roundID)
	if err != nil {
		return err
	}
	if !round.IsEditable() {
		return errs.ErrRoundNotEditable
	}
	if err := s.rounds.DeleteRound(ctx, roundID); err != nil {
		s.logger.Error("Failed to delete round", "roundId", roundID, "error", err)
		return fmt.Errorf("failed to delete round: %w", err)
	}
	s.logger.Info("Round deleted", "roundId", roundID)
	return nil
}

func (s *RoundService) Lock(ctx context.Context, roundID int64) (*domain.Round, error) {
	return s.transition(ctx, roundID, []domain.RoundStatus{domain.RoundStatusUnlocked}, domain.RoundStatusLocked, nil, nil)
}

func (s *RoundService) Unlock(ctx context.Context, roundID int64) (*domain.Round, error) {
	return s.transition(ctx, roundID, []domain.RoundStatus{domain.RoundStatusLocked}, domain.RoundStatusUnlocked, nil, nil)
}

func (s *RoundService) Start(ctx context.Context, roundID int64) (*domain.Round, error) {
	current, err := s.Get(ctx, roundID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	ends := start.Add(current.Duration())
	round, err := s.transition(ctx, roundID, []domain.RoundStatus{domain.RoundStatusUnlocked}, domain.RoundStatusActive, &start, &ends)
	if err != nil {
		return nil, err
	}

	s.timer.Schedule(round.ID, ends)
	s.publisher.PublishRoundEvent(ctx, domain.EventRoundStarted, round)
	return round, nil
}

func (s *RoundService) Stop(ctx context.Context, roundID int64) (*domain.Round, error) {
	ends := s.now()
	round, err := s.transition(ctx, roundID, []domain.RoundStatus{domain.RoundStatusActive}, domain.RoundStatusCompleted, nil, &ends)
	if err != nil {
		return nil, err
	}

	s.timer.Cancel(round.ID)
	s.publisher.PublishRoundEvent(ctx, domain.EventRoundStopped, round)
	return round, nil
}

func (s *RoundService) Complete(ctx context.Context, roundID int64) (*domain.Round, error) {
	from := []domain.RoundStatus{domain.RoundStatusLocked, domain.RoundStatusUnlocked, domain.RoundStatusActive}
	round, err := s.transition(ctx, roundID, from, domain.RoundStatusCompleted, nil, nil)
	if err != nil {
		return nil, err
	}

	s.timer.Cancel(round.ID)
	s.publisher.PublishRoundEvent(ctx, domain.EventRoundStopped, round)
	return round, nil
}

func (s *RoundService) AutoComplete(ctx context.Context, roundID int64) error {
	changed, err := s.rounds.TransitionRound(ctx, roundID, []domain.RoundStatus{domain.RoundStatusActive}, domain.RoundStatusCompleted, nil, nil)
	if err != nil {
		s.logger.Error("Failed to auto complete round", "roundId", roundID, "error", err)
		return fmt.Errorf("failed to auto complete round: %w", err)
	}
	if !changed {
		s.logger.Debug("Round already left ACTIVE", "roundId", roundID)
		return nil
	}

	round, err := s.Get(ctx, roundID)
	if err != nil {
		return err
	}
	s.logger.Info("Round completed by timer", "roundId", roundID)
	s.publisher.PublishRoundEvent(ctx, domain.EventRoundStopped, round)
	return nil
}

func (s *RoundService) ExpiredRounds(ctx context.Context, now time.Time) ([]*domain.Round, error) {
	rounds, err := s.rounds.ListExpiredRounds(ctx, now)
	if err != nil {
		s.logger.Error("Failed to list expired rounds", "error", err)
		return nil, fmt.Errorf("failed to list expired rounds: %w", err)
	}
	return rounds, nil
}

func (s *RoundService) transition(
	ctx context.Context,
	roundID int64,
	from []domain.RoundStatus,
	to domain.RoundStatus,
	startTime, endsAt *time.Time,
) (*domain.Round, error) {
	changed, err := s.rounds.TransitionRound(ctx, roundID, from, to, startTime, endsAt)
	if err != nil {
		s.logger.Error("Failed to transition round", "roundId", roundID, "to", to, "error", err)
		return nil, fmt.Errorf("failed to transition round: %w", err)
	}

	round, err := s.Get(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("%w: round is %s", errs.ErrInvalidTransition, round.Status)
	}

	s.logger.Info("Round transitioned", "roundId", roundID, "status", round.Status)
	return round, nil
}
