package contestrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

const roundColumns = `id, round_number, name, duration_minutes, weight, status, start_time, ends_at, created_at`

func (r *Repository) CreateRound(ctx context.Context, round *domain.Round) error {
	query := `
		INSERT INTO rounds (round_number, name, duration_minutes, weight, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		round.RoundNumber,
		round.Name,
		round.DurationMinutes,
		round.Weight,
		round.Status,
	).Scan(&round.ID, &round.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create round", "error", err)
		return fmt.Errorf("failed to create round: %w", mapError(err))
	}
	return nil
}

func (r *Repository) GetRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	var round domain.Round
	err := r.db.GetContext(ctx, &round, `SELECT `+roundColumns+` FROM rounds WHERE id = $1`, roundID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get round", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return &round, nil
}

func (r *Repository) ListRounds(ctx context.Context) ([]*domain.Round, error) {
	rounds := make([]*domain.Round, 0)
	if err := r.db.SelectContext(ctx, &rounds, `SELECT `+roundColumns+` FROM rounds ORDER BY round_number`); err != nil {
		r.logger.Error("Failed to list rounds", "error", err)
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func (r *Repository) DeleteRound(ctx context.Context, roundID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = $1`, roundID); err != nil {
		r.logger.Error("Failed to delete round", "roundId", roundID, "error", err)
		return fmt.Errorf("failed to delete round: %w", err)
	}
	return nil
}

func (r *Repository) TransitionRound(
	ctx context.Context,
	roundID int64,
	from []domain.RoundStatus,
	to domain.RoundStatus,
	startTime, endsAt *time.Time,
) (bool, error) {
	statuses := make([]string, len(from))
	for i, s := range from {
		statuses[i] = string(s)
	}

	query := `
		UPDATE rounds
		SET status = $1,
			start_time = COALESCE($2::timestamptz, start_time),
			ends_at = COALESCE($3::timestamptz, ends_at)
		WHERE id = $4 AND status = ANY($5)
	`
	res, err := r.db.ExecContext(ctx, query, to, startTime, endsAt, roundID, pq.Array(statuses))
	if err != nil {
		r.logger.Error("Failed to transition round", "roundId", roundID, "to", to, "error", err)
		return false, fmt.Errorf("failed to transition round: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) ListExpiredRounds(ctx context.Context, now time.Time) ([]*domain.Round, error) {
	rounds := make([]*domain.Round, 0)
	query := `SELECT ` + roundColumns + ` FROM rounds WHERE status = $1 AND ends_at <= $2 ORDER BY ends_at`
	if err := r.db.SelectContext(ctx, &rounds, query, domain.RoundStatusActive, now); err != nil {
		r.logger.Error("Failed to list expired rounds", "error", err)
		return nil, fmt.Errorf("failed to list expired rounds: %w", err)
	}
	return rounds, nil
}
