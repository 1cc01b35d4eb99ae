package contestrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

const (
	userQuestionColumns = `id, user_id, question_id, attempts, disabled, updated_at`

	submissionViewQuery = `
		SELECT s.id, s.user_id, s.round_id, s.question_id, s.language, s.code, s.score, s.attempt,
			s.time_taken_seconds, s.is_correct, s.submitted_at,
			u.username, u.full_name, COALESCE(t.name, u.username) AS team_name, q.title AS question_title
		FROM submissions s
		JOIN users u ON u.id = s.user_id
		LEFT JOIN teams t ON t.id = u.team_id
		JOIN questions q ON q.id = s.question_id
	`
)

func (r *Repository) GetUserQuestion(ctx context.Context, userID, questionID int64) (*domain.UserQuestion, error) {
	var uq domain.UserQuestion
	query := `SELECT ` + userQuestionColumns + ` FROM user_questions WHERE user_id = $1 AND question_id = $2`
	if err := r.db.GetContext(ctx, &uq, query, userID, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get user question", "userId", userID, "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to get user question: %w", err)
	}
	return &uq, nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionView, error) {
	var view domain.SubmissionView
	if err := r.db.GetContext(ctx, &view, submissionViewQuery+` WHERE s.id = $1`, submissionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &view, nil
}

func (r *Repository) ListRoundSubmissions(ctx context.Context, roundID int64) ([]*domain.SubmissionView, error) {
	views := make([]*domain.SubmissionView, 0)
	query := submissionViewQuery + ` WHERE s.round_id = $1 ORDER BY s.submitted_at, s.id`
	if err := r.db.SelectContext(ctx, &views, query, roundID); err != nil {
		r.logger.Error("Failed to list round submissions", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list round submissions: %w", err)
	}
	return views, nil
}

func (r *Repository) ListUserRoundMarks(ctx context.Context, userID, roundID int64) ([]domain.SubmissionMark, error) {
	marks := make([]domain.SubmissionMark, 0)
	query := `
		SELECT user_id, question_id, is_correct, submitted_at
		FROM submissions
		WHERE user_id = $1 AND round_id = $2
		ORDER BY submitted_at, id
	`
	if err := r.db.SelectContext(ctx, &marks, query, userID, roundID); err != nil {
		r.logger.Error("Failed to list user marks", "userId", userID, "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list user marks: %w", err)
	}
	return marks, nil
}

func (r *Repository) SolvedQuestionIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	query := `SELECT DISTINCT question_id FROM submissions WHERE user_id = $1 AND is_correct ORDER BY question_id`
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		r.logger.Error("Failed to list solved questions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list solved questions: %w", err)
	}
	return ids, nil
}
