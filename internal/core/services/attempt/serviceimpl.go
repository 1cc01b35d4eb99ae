package attempt

import (
	"context"
	"fmt"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ IAttemptTracker = (*AttemptTracker)(nil)

type AttemptTracker struct {
	repo   secondary.SubmissionRepository
	logger primary.Logger
}

func NewAttemptTracker(repo secondary.SubmissionRepository, logger primary.Logger) *AttemptTracker {
	return &AttemptTracker{
		repo:   repo,
		logger: logger,
	}
}

func (t *AttemptTracker) CheckAndReserve(ctx context.Context, userID, questionID int64) (int, error) {
	uq, err := t.repo.GetUserQuestion(ctx, userID, questionID)
	if err != nil {
		t.logger.Error("Failed to get user question", "userId", userID, "questionId", questionID, "error", err)
		return 0, fmt.Errorf("failed to get user question: %w", err)
	}
	if err := Check(uq); err != nil {
		t.logger.Info("Submission rejected by attempt policy", "userId", userID, "questionId", questionID, "error", err)
		return 0, err
	}
	if uq == nil {
		return 0, nil
	}
	return uq.Attempts, nil
}

// Check rejects a pair that is solved or out of attempts. A nil row has no attempts yet.
func Check(uq *domain.UserQuestion) error {
	if uq == nil {
		return nil
	}
	if uq.Disabled {
		return errs.ErrAlreadySolved
	}
	if uq.Attempts >= domain.MaxAttempts {
		return errs.ErrAttemptsExhausted
	}
	return nil
}

// Record consumes one attempt and returns its ordinal. Disabled latches on a pass and never resets.
func Record(uq *domain.UserQuestion, passed bool) int {
	uq.Attempts++
	uq.Disabled = uq.Disabled || passed
	return uq.Attempts
}
