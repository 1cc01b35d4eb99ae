package secondary

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type QuestionRepository interface {
	CreateQuestion(ctx context.Context, question *domain.Question) error
	UpdateQuestion(ctx context.Context, question *domain.Question) error
	DeleteQuestion(ctx context.Context, questionID int64) error

	// GetQuestion returns nil when the question does not exist
	GetQuestion(ctx context.Context, questionID int64) (*domain.Question, error)

	// ListQuestions returns the round's questions with test cases and buggy codes loaded
	ListQuestions(ctx context.Context, roundID int64) ([]*domain.Question, error)

	CountQuestions(ctx context.Context, roundID int64) (int, error)

	// ListTestCases returns the question's test cases in evaluation order
	ListTestCases(ctx context.Context, questionID int64) ([]*domain.TestCase, error)

	// CreateTestCase appends the test case after the existing ones
	CreateTestCase(ctx context.Context, testCase *domain.TestCase) error
	GetTestCase(ctx context.Context, testCaseID int64) (*domain.TestCase, error)
	UpdateTestCase(ctx context.Context, testCase *domain.TestCase) error
	DeleteTestCase(ctx context.Context, testCaseID int64) error

	CreateBuggyCode(ctx context.Context, buggyCode *domain.BuggyCode) error
	GetBuggyCode(ctx context.Context, buggyCodeID int64) (*domain.BuggyCode, error)
	UpdateBuggyCode(ctx context.Context, buggyCode *domain.BuggyCode) error
	DeleteBuggyCode(ctx context.Context, buggyCodeID int64) error
}
