package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

func (s *Store) GetUserQuestion(_ context.Context, userID, questionID int64) (*domain.UserQuestion, error) {
	var out *domain.UserQuestion
	s.read(func(st *state) {
		if uq, ok := st.userQuestions[pairKey{userID, questionID}]; ok {
			out = &uq
		}
	})
	return out, nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID uuid.UUID) (*domain.SubmissionView, error) {
	var out *domain.SubmissionView
	s.read(func(st *state) {
		for _, sub := range st.submissions {
			if sub.ID == submissionID {
				out = s.view(st, sub)
				return
			}
		}
	})
	return out, nil
}

func (s *Store) ListRoundSubmissions(_ context.Context, roundID int64) ([]*domain.SubmissionView, error) {
	out := make([]*domain.SubmissionView, 0)
	s.read(func(st *state) {
		for _, sub := range st.submissions {
			if sub.RoundID == roundID {
				out = append(out, s.view(st, sub))
			}
		}
	})
	return out, nil
}

func (s *Store) ListUserRoundMarks(_ context.Context, userID, roundID int64) ([]domain.SubmissionMark, error) {
	out := make([]domain.SubmissionMark, 0)
	s.read(func(st *state) {
		for _, sub := range st.submissions {
			if sub.RoundID == roundID && sub.UserID == userID {
				out = append(out, mark(sub))
			}
		}
	})
	return out, nil
}

func (s *Store) SolvedQuestionIDs(_ context.Context, userID int64) ([]int64, error) {
	seen := make(map[int64]bool)
	out := make([]int64, 0)
	s.read(func(st *state) {
		for _, sub := range st.submissions {
			if sub.UserID == userID && sub.IsCorrect && !seen[sub.QuestionID] {
				seen[sub.QuestionID] = true
				out = append(out, sub.QuestionID)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Store) view(st *state, sub domain.Submission) *domain.SubmissionView {
	u := st.users[sub.UserID]
	return &domain.SubmissionView{
		Submission:    sub,
		Username:      u.Username,
		FullName:      u.FullName,
		TeamName:      s.teamName(st, u),
		QuestionTitle: st.questions[sub.QuestionID].Title,
	}
}

func mark(sub domain.Submission) domain.SubmissionMark {
	return domain.SubmissionMark{
		UserID:        sub.UserID,
		QuestionID:    sub.QuestionID,
		Correct:       sub.IsCorrect,
		TimeSubmitted: sub.SubmittedAt,
	}
}
