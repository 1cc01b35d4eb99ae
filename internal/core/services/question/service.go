package question

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type QuestionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TestCaseInput struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	IsHidden       bool   `json:"isHidden"`
	Description    string `json:"description"`
}

type BuggyCodeInput struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// IQuestionService manages round content. Every write requires the owning round to be editable.
type IQuestionService interface {
	CreateQuestion(ctx context.Context, roundID int64, in QuestionInput) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, questionID int64, in QuestionInput) (*domain.Question, error)
	DeleteQuestion(ctx context.Context, questionID int64) error

	AddTestCase(ctx context.Context, questionID int64, in TestCaseInput) (*domain.TestCase, error)
	UpdateTestCase(ctx context.Context, testCaseID int64, in TestCaseInput) (*domain.TestCase, error)
	DeleteTestCase(ctx context.Context, testCaseID int64) error

	AddBuggyCode(ctx context.Context, questionID int64, in BuggyCodeInput) (*domain.BuggyCode, error)
	UpdateBuggyCode(ctx context.Context, buggyCodeID int64, in BuggyCodeInput) (*domain.BuggyCode, error)
	DeleteBuggyCode(ctx context.Context, buggyCodeID int64) error

	// ListForParticipant returns the questions of a started round without hidden test cases
	ListForParticipant(ctx context.Context, roundID int64) ([]*domain.Question, error)
	ListForAdmin(ctx context.Context, roundID int64) ([]*domain.Question, error)
}
