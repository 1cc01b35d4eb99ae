package submission

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type SubmitCommand struct {
	UserID     int64
	RoundID    int64
	QuestionID int64
	Code       string
	Language   string
}

// SubmissionResult is everything a participant learns from one scored submission
type SubmissionResult struct {
	Submission        *domain.Submission      `json:"submission"`
	Leaderboard       *domain.LeaderboardRow  `json:"leaderboard"`
	Verdict           *domain.Verdict         `json:"-"`
	Attempts          int                     `json:"attempts"`
	AttemptsRemaining int                     `json:"attemptsRemaining"`
	Disabled          bool                    `json:"disabled"`
	Solved            bool                    `json:"solved"`
	Score             int                     `json:"score"`
	PassedTests       int                     `json:"passedTests"`
	TotalTests        int                     `json:"totalTests"`
	Message           string                  `json:"message"`
	Summary           []domain.SubmissionMark `json:"submissions"`
}

type ISubmissionService interface {
	// Submit evaluates the code and records the outcome atomically.
	// A failed evaluation is a successful call with Solved false.
	Submit(ctx context.Context, cmd SubmitCommand) (*SubmissionResult, error)

	ListRoundSubmissions(ctx context.Context, roundID int64) ([]*domain.SubmissionView, error)
	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionView, error)

	// SolvedQuestions returns the distinct ids of questions the user answered correctly
	SolvedQuestions(ctx context.Context, userID int64) ([]int64, error)
}
