package domain

import "time"

type Question struct {
	ID          int64        `db:"id" json:"id"`
	RoundID     int64        `db:"round_id" json:"roundId"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	TestCases   []*TestCase  `db:"-" json:"testCases,omitempty"`
	BuggyCodes  []*BuggyCode `db:"-" json:"buggyCodes,omitempty"`
}

// ForParticipant returns a copy of the question without hidden test cases.
func (q *Question) ForParticipant() *Question {
	cp := *q
	cp.TestCases = make([]*TestCase, 0, len(q.TestCases))
	for _, tc := range q.TestCases {
		if !tc.IsHidden {
			cp.TestCases = append(cp.TestCases, tc)
		}
	}
	return &cp
}

// BuggyCode is a sample snippet participants start from. It is never evaluated.
type BuggyCode struct {
	ID         int64  `db:"id" json:"id"`
	QuestionID int64  `db:"question_id" json:"questionId"`
	Language   string `db:"language" json:"language"`
	Code       string `db:"code" json:"code"`
}
