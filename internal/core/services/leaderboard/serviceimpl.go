package leaderboard

import (
	"context"
	"fmt"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

const maxCompetitionLimit = 500

var _ ILeaderboardService = (*LeaderboardService)(nil)

type LeaderboardService struct {
	rounds secondary.RoundRepository
	boards secondary.LeaderboardRepository
	logger primary.Logger
}

func NewLeaderboardService(
	rounds secondary.RoundRepository,
	boards secondary.LeaderboardRepository,
	logger primary.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		rounds: rounds,
		boards: boards,
		logger: logger,
	}
}

func (s *LeaderboardService) RoundBoard(ctx context.Context, roundID int64) (*domain.RoundBoard, error) {
	round, err := s.rounds.GetRound(ctx, roundID)
	if err != nil {
		s.logger.Error("Failed to get round", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, errs.ErrRoundNotFound
	}

	standings, err := s.boards.ListRoundStandings(ctx, roundID)
	if err != nil {
		s.logger.Error("Failed to list round standings", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list round standings: %w", err)
	}

	marks, err := s.boards.ListRoundMarks(ctx, roundID)
	if err != nil {
		s.logger.Error("Failed to list round marks", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list round marks: %w", err)
	}

	byUser := make(map[int64][]domain.SubmissionMark, len(standings))
	for _, m := range marks {
		byUser[m.UserID] = append(byUser[m.UserID], m)
	}
	for _, st := range standings {
		st.Submissions = byUser[st.UserID]
		if st.Submissions == nil {
			st.Submissions = []domain.SubmissionMark{}
		}
	}

	return &domain.RoundBoard{
		RoundID:     roundID,
		Leaderboard: standings,
	}, nil
}

func (s *LeaderboardService) CompetitionBoard(ctx context.Context, limit int) ([]*domain.CompetitionEntry, error) {
	if limit <= 0 || limit > maxCompetitionLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", errs.ErrValidation, maxCompetitionLimit)
	}
	entries, err := s.boards.TopUsers(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list top users", "error", err)
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	return entries, nil
}
