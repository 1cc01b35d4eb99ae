package evaluator

import (
	"context"
	"fmt"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

var _ ITestEvaluator = (*TestEvaluator)(nil)

type TestEvaluator struct {
	executor secondary.CodeExecutor
	logger   primary.Logger
}

func NewTestEvaluator(executor secondary.CodeExecutor, logger primary.Logger) *TestEvaluator {
	return &TestEvaluator{
		executor: executor,
		logger:   logger,
	}
}

func (e *TestEvaluator) Evaluate(ctx context.Context, tests []*domain.TestCase, code, language, version string) (*domain.Verdict, error) {
	verdict := &domain.Verdict{
		Passed:      true,
		Total:       len(tests),
		FailedIndex: -1,
	}

	for i, tc := range tests {
		out, err := e.executor.Execute(ctx, &domain.ExecutionRequest{
			Language: language,
			Version:  version,
			Code:     code,
			Stdin:    tc.Input,
		})
		if err != nil {
			e.logger.Error("Failed to execute test case", "testCaseId", tc.ID, "index", i, "error", err)
			return nil, fmt.Errorf("failed to execute test case %d: %w", i+1, err)
		}

		if out.CompileFailed() || out.Code != 0 {
			stderr := out.Stderr
			if out.CompileFailed() {
				stderr = out.CompileStderr
			}
			e.logger.Debug("Test case runtime error", "testCaseId", tc.ID, "index", i, "code", out.Code)
			return fail(verdict, i, domain.FailureRuntimeError, stderr), nil
		}

		if Normalize(out.Stdout) != Normalize(tc.ExpectedOutput) {
			e.logger.Debug("Test case output mismatch", "testCaseId", tc.ID, "index", i)
			return fail(verdict, i, domain.FailureOutputMismatch, out.Stderr), nil
		}

		verdict.PassedCount++
	}

	return verdict, nil
}

func fail(v *domain.Verdict, index int, kind domain.FailureKind, stderr string) *domain.Verdict {
	v.Passed = false
	v.FailedIndex = index
	v.Kind = kind
	v.Stderr = stderr
	return v
}
