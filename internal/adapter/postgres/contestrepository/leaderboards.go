package contestrepository

import (
	"context"
	"fmt"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

func (r *Repository) ListRoundStandings(ctx context.Context, roundID int64) ([]*domain.RoundStanding, error) {
	standings := make([]*domain.RoundStanding, 0)
	query := `
		SELECT l.user_id, COALESCE(t.name, u.username) AS team_name, u.username,
			l.rank, l.score, l.correct_count, l.wrong_count, l.time_penalty
		FROM leaderboards l
		JOIN users u ON u.id = l.user_id
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE l.round_id = $1
		ORDER BY l.rank, l.id
	`
	if err := r.db.SelectContext(ctx, &standings, query, roundID); err != nil {
		r.logger.Error("Failed to list round standings", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list round standings: %w", err)
	}
	return standings, nil
}

func (r *Repository) ListRoundMarks(ctx context.Context, roundID int64) ([]domain.SubmissionMark, error) {
	marks := make([]domain.SubmissionMark, 0)
	query := `
		SELECT user_id, question_id, is_correct, submitted_at
		FROM submissions
		WHERE round_id = $1
		ORDER BY submitted_at, id
	`
	if err := r.db.SelectContext(ctx, &marks, query, roundID); err != nil {
		r.logger.Error("Failed to list round marks", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list round marks: %w", err)
	}
	return marks, nil
}

func (r *Repository) TopUsers(ctx context.Context, limit int) ([]*domain.CompetitionEntry, error) {
	entries := make([]*domain.CompetitionEntry, 0)
	query := `
		SELECT u.id, u.username, u.full_name, COALESCE(t.name, u.username) AS team_name, u.total_score
		FROM users u
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE u.role <> $1
		ORDER BY u.total_score DESC, u.id
		LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &entries, query, domain.RoleAdmin, limit); err != nil {
		r.logger.Error("Failed to list top users", "error", err)
		return nil, fmt.Errorf("failed to list top users: %w", err)
	}
	return entries, nil
}
