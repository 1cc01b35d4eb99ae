package contestrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ secondary.ScoringTx = (*scoringTx)(nil)

const leaderboardColumns = `id, round_id, user_id, score, time_penalty, correct_count, wrong_count, rank, updated_at`

// WithinTx runs fn at READ COMMITTED. Serialisation comes from the FOR UPDATE row locks taken by
// the lock methods, which re-read the latest committed row once the lock is granted.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx secondary.ScoringTx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		r.logger.Error("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if the transaction is committed

	if err := fn(ctx, &scoringTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type scoringTx struct {
	tx *sqlx.Tx
}

func (t *scoringTx) LockRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	var round domain.Round
	err := t.tx.GetContext(ctx, &round, `SELECT `+roundColumns+` FROM rounds WHERE id = $1 FOR UPDATE`, roundID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrRoundNotFound
		}
		return nil, err
	}
	return &round, nil
}

func (t *scoringTx) LockUserQuestion(ctx context.Context, userID, questionID int64) (*domain.UserQuestion, error) {
	insert := `
		INSERT INTO user_questions (user_id, question_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, question_id) DO NOTHING
	`
	if _, err := t.tx.ExecContext(ctx, insert, userID, questionID); err != nil {
		return nil, err
	}

	var uq domain.UserQuestion
	query := `SELECT ` + userQuestionColumns + ` FROM user_questions WHERE user_id = $1 AND question_id = $2 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &uq, query, userID, questionID); err != nil {
		return nil, err
	}
	return &uq, nil
}

func (t *scoringTx) SaveUserQuestion(ctx context.Context, uq *domain.UserQuestion) error {
	query := `
		UPDATE user_questions
		SET attempts = $1, disabled = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`
	return t.tx.QueryRowxContext(ctx, query, uq.Attempts, uq.Disabled, uq.ID).Scan(&uq.UpdatedAt)
}

func (t *scoringTx) CreateSubmission(ctx context.Context, s *domain.Submission) error {
	query := `
		INSERT INTO submissions (
			id, user_id, round_id, question_id, language, code,
			score, attempt, time_taken_seconds, is_correct, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := t.tx.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.RoundID,
		s.QuestionID,
		s.Language,
		s.Code,
		s.Score,
		s.Attempt,
		s.TimeTakenSeconds,
		s.IsCorrect,
		s.SubmittedAt,
	)
	return mapError(err)
}

func (t *scoringTx) LockLeaderboardRow(ctx context.Context, roundID, userID int64) (*domain.LeaderboardRow, error) {
	insert := `
		INSERT INTO leaderboards (round_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (round_id, user_id) DO NOTHING
	`
	if _, err := t.tx.ExecContext(ctx, insert, roundID, userID); err != nil {
		return nil, err
	}

	var row domain.LeaderboardRow
	query := `SELECT ` + leaderboardColumns + ` FROM leaderboards WHERE round_id = $1 AND user_id = $2 FOR UPDATE`
	if err := t.tx.GetContext(ctx, &row, query, roundID, userID); err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *scoringTx) SaveLeaderboardRow(ctx context.Context, row *domain.LeaderboardRow) error {
	query := `
		UPDATE leaderboards
		SET score = $1, time_penalty = $2, correct_count = $3, wrong_count = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	return t.tx.QueryRowxContext(ctx, query, row.Score, row.TimePenalty, row.CorrectCount, row.WrongCount, row.ID).
		Scan(&row.UpdatedAt)
}

func (t *scoringTx) ListLeaderboardRows(ctx context.Context, roundID int64) ([]*domain.LeaderboardRow, error) {
	rows := make([]*domain.LeaderboardRow, 0)
	query := `SELECT ` + leaderboardColumns + ` FROM leaderboards WHERE round_id = $1 ORDER BY id`
	if err := t.tx.SelectContext(ctx, &rows, query, roundID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *scoringTx) SaveRanks(ctx context.Context, rows []*domain.LeaderboardRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]int64, len(rows))
	ranks := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		ranks[i] = int64(row.Rank)
	}

	query := `
		UPDATE leaderboards AS l
		SET rank = v.rank
		FROM unnest($1::bigint[], $2::int[]) AS v(id, rank)
		WHERE l.id = v.id AND l.rank IS DISTINCT FROM v.rank
	`
	_, err := t.tx.ExecContext(ctx, query, pq.Array(ids), pq.Array(ranks))
	return err
}

func (t *scoringTx) AddUserScore(ctx context.Context, userID int64, delta int) error {
	res, err := t.tx.ExecContext(ctx, `UPDATE users SET total_score = total_score + $1 WHERE id = $2`, delta, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
