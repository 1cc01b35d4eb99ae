package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

// SubmissionRepository holds the read side of attempts and submissions
type SubmissionRepository interface {
	// GetUserQuestion returns nil when the user never submitted to the question
	GetUserQuestion(ctx context.Context, userID, questionID int64) (*domain.UserQuestion, error)

	GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionView, error)

	// ListRoundSubmissions returns the round's submissions oldest first
	ListRoundSubmissions(ctx context.Context, roundID int64) ([]*domain.SubmissionView, error)

	// ListUserRoundMarks returns the user's submission marks in the round oldest first
	ListUserRoundMarks(ctx context.Context, userID, roundID int64) ([]domain.SubmissionMark, error)

	// SolvedQuestionIDs returns the distinct questions the user solved
	SolvedQuestionIDs(ctx context.Context, userID int64) ([]int64, error)
}
