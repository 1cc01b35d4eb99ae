package domain

import (
	"time"

	"github.com/google/uuid"
)

// Submission is an immutable audit record of one scored attempt.
type Submission struct {
	ID               uuid.UUID `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"userId"`
	RoundID          int64     `db:"round_id" json:"roundId"`
	QuestionID       int64     `db:"question_id" json:"questionId"`
	Language         string    `db:"language" json:"language"`
	Code             string    `db:"code" json:"code"`
	Score            int       `db:"score" json:"score"`
	Attempt          int       `db:"attempt" json:"attempt"`
	TimeTakenSeconds int       `db:"time_taken_seconds" json:"timeTakenSeconds"`
	IsCorrect        bool      `db:"is_correct" json:"isCorrect"`
	SubmittedAt      time.Time `db:"submitted_at" json:"submittedAt"`
}

// NewSubmission creates a new submission
func NewSubmission(userID, roundID, questionID int64, language, code string, submittedAt time.Time) *Submission {
	return &Submission{
		ID:          uuid.New(),
		UserID:      userID,
		RoundID:     roundID,
		QuestionID:  questionID,
		Language:    language,
		Code:        code,
		SubmittedAt: submittedAt,
	}
}

// SubmissionMark is the per question outcome shown on leaderboards.
type SubmissionMark struct {
	UserID        int64     `db:"user_id" json:"-"`
	QuestionID    int64     `db:"question_id" json:"questionId"`
	Correct       bool      `db:"is_correct" json:"correct"`
	TimeSubmitted time.Time `db:"submitted_at" json:"timeSubmitted"`
}

// SubmissionView is a submission joined with its author and question for audit listings.
type SubmissionView struct {
	Submission
	Username      string `db:"username" json:"username"`
	FullName      string `db:"full_name" json:"fullName"`
	TeamName      string `db:"team_name" json:"teamName"`
	QuestionTitle string `db:"question_title" json:"questionTitle"`
}
