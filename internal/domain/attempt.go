package domain

import "time"

// MaxAttempts is the number of scored submissions allowed per user and question.
const MaxAttempts = 3

// UserQuestion tracks attempts of one user on one question. Disabled is a one-way latch.
type UserQuestion struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	QuestionID int64     `db:"question_id" json:"questionId"`
	Attempts   int       `db:"attempts" json:"attempts"`
	Disabled   bool      `db:"disabled" json:"disabled"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

func (uq *UserQuestion) Remaining() int {
	left := MaxAttempts - uq.Attempts
	if left < 0 || uq.Disabled {
		return 0
	}
	return left
}
