// Package contestrepository stores rounds, questions, attempts, submissions and leaderboards in PostgreSQL.
package contestrepository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var (
	_ secondary.RoundRepository       = (*Repository)(nil)
	_ secondary.QuestionRepository    = (*Repository)(nil)
	_ secondary.SubmissionRepository  = (*Repository)(nil)
	_ secondary.LeaderboardRepository = (*Repository)(nil)
	_ secondary.UnitOfWork            = (*Repository)(nil)
)

const uniqueViolation = "23505"

type Repository struct {
	db     *sqlx.DB
	logger primary.Logger
}

func New(db *sqlx.DB, logger primary.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// mapError turns driver errors that carry domain meaning into sentinels
func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return errs.ErrConflict
	}
	return err
}
