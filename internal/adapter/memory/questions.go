package memory

import (
	"context"
	"sort"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

func (s *Store) CreateQuestion(_ context.Context, question *domain.Question) error {
	return s.write(func(st *state) error {
		question.ID = st.nextID()
		question.CreatedAt = s.now()
		q := *question
		q.TestCases, q.BuggyCodes = nil, nil
		st.questions[q.ID] = q
		return nil
	})
}

func (s *Store) UpdateQuestion(_ context.Context, question *domain.Question) error {
	return s.write(func(st *state) error {
		q, ok := st.questions[question.ID]
		if !ok {
			return nil
		}
		q.Title = question.Title
		q.Description = question.Description
		st.questions[q.ID] = q
		return nil
	})
}

func (s *Store) DeleteQuestion(_ context.Context, questionID int64) error {
	return s.write(func(st *state) error {
		deleteQuestion(st, questionID)
		return nil
	})
}

func deleteQuestion(st *state, questionID int64) {
	delete(st.questions, questionID)
	for id, tc := range st.testCases {
		if tc.QuestionID == questionID {
			delete(st.testCases, id)
		}
	}
	for id, bc := range st.buggyCodes {
		if bc.QuestionID == questionID {
			delete(st.buggyCodes, id)
		}
	}
}

func (s *Store) GetQuestion(_ context.Context, questionID int64) (*domain.Question, error) {
	var out *domain.Question
	s.read(func(st *state) {
		if q, ok := st.questions[questionID]; ok {
			out = withChildren(st, q)
		}
	})
	return out, nil
}

func (s *Store) ListQuestions(_ context.Context, roundID int64) ([]*domain.Question, error) {
	out := make([]*domain.Question, 0)
	s.read(func(st *state) {
		for _, q := range st.questions {
			if q.RoundID == roundID {
				out = append(out, withChildren(st, q))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountQuestions(_ context.Context, roundID int64) (int, error) {
	n := 0
	s.read(func(st *state) {
		for _, q := range st.questions {
			if q.RoundID == roundID {
				n++
			}
		}
	})
	return n, nil
}

func (s *Store) ListTestCases(_ context.Context, questionID int64) ([]*domain.TestCase, error) {
	var out []*domain.TestCase
	s.read(func(st *state) {
		out = testCasesOf(st, questionID)
	})
	return out, nil
}

func (s *Store) CreateTestCase(_ context.Context, testCase *domain.TestCase) error {
	return s.write(func(st *state) error {
		next := 0
		for _, tc := range st.testCases {
			if tc.QuestionID == testCase.QuestionID && tc.Position >= next {
				next = tc.Position + 1
			}
		}
		testCase.ID = st.nextID()
		testCase.Position = next
		st.testCases[testCase.ID] = *testCase
		return nil
	})
}

func (s *Store) GetTestCase(_ context.Context, testCaseID int64) (*domain.TestCase, error) {
	var out *domain.TestCase
	s.read(func(st *state) {
		if tc, ok := st.testCases[testCaseID]; ok {
			out = &tc
		}
	})
	return out, nil
}

func (s *Store) UpdateTestCase(_ context.Context, testCase *domain.TestCase) error {
	return s.write(func(st *state) error {
		tc, ok := st.testCases[testCase.ID]
		if !ok {
			return nil
		}
		tc.Input = testCase.Input
		tc.ExpectedOutput = testCase.ExpectedOutput
		tc.IsHidden = testCase.IsHidden
		tc.Description = testCase.Description
		st.testCases[tc.ID] = tc
		return nil
	})
}

func (s *Store) DeleteTestCase(_ context.Context, testCaseID int64) error {
	return s.write(func(st *state) error {
		delete(st.testCases, testCaseID)
		return nil
	})
}

func (s *Store) CreateBuggyCode(_ context.Context, buggyCode *domain.BuggyCode) error {
	return s.write(func(st *state) error {
		buggyCode.ID = st.nextID()
		st.buggyCodes[buggyCode.ID] = *buggyCode
		return nil
	})
}

func (s *Store) GetBuggyCode(_ context.Context, buggyCodeID int64) (*domain.BuggyCode, error) {
	var out *domain.BuggyCode
	s.read(func(st *state) {
		if bc, ok := st.buggyCodes[buggyCodeID]; ok {
			out = &bc
		}
	})
	return out, nil
}

func (s *Store) UpdateBuggyCode(_ context.Context, buggyCode *domain.BuggyCode) error {
	return s.write(func(st *state) error {
		bc, ok := st.buggyCodes[buggyCode.ID]
		if !ok {
			return nil
		}
		bc.Language = buggyCode.Language
		bc.Code = buggyCode.Code
		st.buggyCodes[bc.ID] = bc
		return nil
	})
}

func (s *Store) DeleteBuggyCode(_ context.Context, buggyCodeID int64) error {
	return s.write(func(st *state) error {
		delete(st.buggyCodes, buggyCodeID)
		return nil
	})
}

func withChildren(st *state, q domain.Question) *domain.Question {
	q.TestCases = testCasesOf(st, q.ID)
	q.BuggyCodes = make([]*domain.BuggyCode, 0)
	for _, bc := range st.buggyCodes {
		if bc.QuestionID == q.ID {
			q.BuggyCodes = append(q.BuggyCodes, &bc)
		}
	}
	sort.Slice(q.BuggyCodes, func(i, j int) bool { return q.BuggyCodes[i].ID < q.BuggyCodes[j].ID })
	return &q
}

func testCasesOf(st *state, questionID int64) []*domain.TestCase {
	out := make([]*domain.TestCase, 0)
	for _, tc := range st.testCases {
		if tc.QuestionID == questionID {
			out = append(out, &tc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}
