package evaluator

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

// ITestEvaluator runs submitted code against a question's test cases
type ITestEvaluator interface {
	// Evaluate runs tests in the given order and stops at the first failure.
	// An error means the code could not be evaluated; a failed Verdict is a normal outcome.
	Evaluate(ctx context.Context, tests []*domain.TestCase, code, language, version string) (*domain.Verdict, error)
}
