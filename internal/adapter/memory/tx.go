package memory

import (
	"context"
	"fmt"

	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ secondary.ScoringTx = (*memTx)(nil)

// WithinTx holds the store's write lock for the whole of fn, which stands in for the row locks
// a database would take.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx secondary.ScoringTx) error) error {
	return s.write(func(st *state) error {
		return fn(ctx, &memTx{store: s, st: st})
	})
}

type memTx struct {
	store *Store
	st    *state
}

func (t *memTx) LockRound(_ context.Context, roundID int64) (*domain.Round, error) {
	r, ok := t.st.rounds[roundID]
	if !ok {
		return nil, errs.ErrRoundNotFound
	}
	return &r, nil
}

func (t *memTx) LockUserQuestion(_ context.Context, userID, questionID int64) (*domain.UserQuestion, error) {
	key := pairKey{userID, questionID}
	uq, ok := t.st.userQuestions[key]
	if !ok {
		uq = domain.UserQuestion{
			ID:         t.st.nextID(),
			UserID:     userID,
			QuestionID: questionID,
			UpdatedAt:  t.store.now(),
		}
		t.st.userQuestions[key] = uq
	}
	return &uq, nil
}

func (t *memTx) SaveUserQuestion(_ context.Context, uq *domain.UserQuestion) error {
	key := pairKey{uq.UserID, uq.QuestionID}
	if _, ok := t.st.userQuestions[key]; !ok {
		return fmt.Errorf("user question %d/%d not locked", uq.UserID, uq.QuestionID)
	}
	uq.UpdatedAt = t.store.now()
	t.st.userQuestions[key] = *uq
	return nil
}

func (t *memTx) CreateSubmission(_ context.Context, submission *domain.Submission) error {
	for _, s := range t.st.submissions {
		if s.ID == submission.ID {
			return errs.ErrConflict
		}
	}
	t.st.submissions = append(t.st.submissions, *submission)
	return nil
}

func (t *memTx) LockLeaderboardRow(_ context.Context, roundID, userID int64) (*domain.LeaderboardRow, error) {
	key := pairKey{roundID, userID}
	row, ok := t.st.leaderboards[key]
	if !ok {
		row = domain.LeaderboardRow{
			ID:        t.st.nextID(),
			RoundID:   roundID,
			UserID:    userID,
			UpdatedAt: t.store.now(),
		}
		t.st.leaderboards[key] = row
	}
	return &row, nil
}

func (t *memTx) SaveLeaderboardRow(_ context.Context, row *domain.LeaderboardRow) error {
	row.UpdatedAt = t.store.now()
	t.st.leaderboards[pairKey{row.RoundID, row.UserID}] = *row
	return nil
}

func (t *memTx) ListLeaderboardRows(_ context.Context, roundID int64) ([]*domain.LeaderboardRow, error) {
	out := make([]*domain.LeaderboardRow, 0)
	for _, row := range t.st.leaderboards {
		if row.RoundID == roundID {
			out = append(out, &row)
		}
	}
	return out, nil
}

func (t *memTx) SaveRanks(_ context.Context, rows []*domain.LeaderboardRow) error {
	for _, r := range rows {
		key := pairKey{r.RoundID, r.UserID}
		stored, ok := t.st.leaderboards[key]
		if !ok {
			return fmt.Errorf("leaderboard row %d not found", r.ID)
		}
		stored.Rank = r.Rank
		t.st.leaderboards[key] = stored
	}
	return nil
}

func (t *memTx) AddUserScore(_ context.Context, userID int64, delta int) error {
	u, ok := t.st.users[userID]
	if !ok {
		return errs.ErrUserNotFound
	}
	u.TotalScore += delta
	t.st.users[userID] = u
	return nil
}
