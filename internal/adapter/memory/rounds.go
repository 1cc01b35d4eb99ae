package memory

import (
	"context"
	"sort"
	"time"

	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

func (s *Store) CreateRound(_ context.Context, round *domain.Round) error {
	return s.write(func(st *state) error {
		for _, r := range st.rounds {
			if r.RoundNumber == round.RoundNumber {
				return errs.ErrConflict
			}
		}
		round.ID = st.nextID()
		round.CreatedAt = s.now()
		st.rounds[round.ID] = *round
		return nil
	})
}

func (s *Store) GetRound(_ context.Context, roundID int64) (*domain.Round, error) {
	var out *domain.Round
	s.read(func(st *state) {
		if r, ok := st.rounds[roundID]; ok {
			out = &r
		}
	})
	return out, nil
}

func (s *Store) ListRounds(_ context.Context) ([]*domain.Round, error) {
	out := make([]*domain.Round, 0)
	s.read(func(st *state) {
		for _, r := range st.rounds {
			out = append(out, &r)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (s *Store) DeleteRound(_ context.Context, roundID int64) error {
	return s.write(func(st *state) error {
		delete(st.rounds, roundID)
		for id, q := range st.questions {
			if q.RoundID == roundID {
				deleteQuestion(st, id)
			}
		}
		return nil
	})
}

func (s *Store) TransitionRound(_ context.Context, roundID int64, from []domain.RoundStatus, to domain.RoundStatus, startTime, endsAt *time.Time) (bool, error) {
	changed := false
	err := s.write(func(st *state) error {
		r, ok := st.rounds[roundID]
		if !ok || !statusIn(r.Status, from) {
			return nil
		}
		r.Status = to
		if startTime != nil {
			t := *startTime
			r.StartTime = &t
		}
		if endsAt != nil {
			t := *endsAt
			r.EndsAt = &t
		}
		st.rounds[roundID] = r
		changed = true
		return nil
	})
	return changed, err
}

func (s *Store) ListExpiredRounds(_ context.Context, now time.Time) ([]*domain.Round, error) {
	out := make([]*domain.Round, 0)
	s.read(func(st *state) {
		for _, r := range st.rounds {
			if r.Status == domain.RoundStatusActive && r.EndsAt != nil && !r.EndsAt.After(now) {
				out = append(out, &r)
			}
		}
	})
	return out, nil
}

func statusIn(status domain.RoundStatus, set []domain.RoundStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
