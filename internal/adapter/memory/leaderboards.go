package memory

import (
	"context"
	"sort"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

func (s *Store) ListRoundStandings(_ context.Context, roundID int64) ([]*domain.RoundStanding, error) {
	var rows []domain.LeaderboardRow
	out := make([]*domain.RoundStanding, 0)
	s.read(func(st *state) {
		for _, row := range st.leaderboards {
			if row.RoundID == roundID {
				rows = append(rows, row)
			}
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Rank != rows[j].Rank {
				return rows[i].Rank < rows[j].Rank
			}
			return rows[i].ID < rows[j].ID
		})
		for _, row := range rows {
			u := st.users[row.UserID]
			out = append(out, &domain.RoundStanding{
				UserID:       row.UserID,
				TeamName:     s.teamName(st, u),
				Username:     u.Username,
				Rank:         row.Rank,
				Score:        row.Score,
				CorrectCount: row.CorrectCount,
				WrongCount:   row.WrongCount,
				TimePenalty:  row.TimePenalty,
			})
		}
	})
	return out, nil
}

func (s *Store) ListRoundMarks(_ context.Context, roundID int64) ([]domain.SubmissionMark, error) {
	out := make([]domain.SubmissionMark, 0)
	s.read(func(st *state) {
		for _, sub := range st.submissions {
			if sub.RoundID == roundID {
				out = append(out, mark(sub))
			}
		}
	})
	return out, nil
}

func (s *Store) TopUsers(_ context.Context, limit int) ([]*domain.CompetitionEntry, error) {
	out := make([]*domain.CompetitionEntry, 0)
	s.read(func(st *state) {
		for _, u := range st.users {
			if u.Role == domain.RoleAdmin {
				continue
			}
			out = append(out, &domain.CompetitionEntry{
				ID:         u.ID,
				Username:   u.Username,
				FullName:   u.FullName,
				TeamName:   s.teamName(st, u),
				TotalScore: u.TotalScore,
			})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
