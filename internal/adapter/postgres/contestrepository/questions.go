package contestrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

const (
	questionColumns  = `id, round_id, title, description, created_at`
	testCaseColumns  = `id, question_id, position, input, expected_output, is_hidden, description`
	buggyCodeColumns = `id, question_id, language, code`
)

func (r *Repository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	query := `
		INSERT INTO questions (round_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, question.RoundID, question.Title, question.Description).
		Scan(&question.ID, &question.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create question", "roundId", question.RoundID, "error", err)
		return fmt.Errorf("failed to create question: %w", mapError(err))
	}
	return nil
}

func (r *Repository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	query := `UPDATE questions SET title = $1, description = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, question.Title, question.Description, question.ID); err != nil {
		r.logger.Error("Failed to update question", "questionId", question.ID, "error", err)
		return fmt.Errorf("failed to update question: %w", err)
	}
	return nil
}

func (r *Repository) DeleteQuestion(ctx context.Context, questionID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, questionID); err != nil {
		r.logger.Error("Failed to delete question", "questionId", questionID, "error", err)
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}

func (r *Repository) GetQuestion(ctx context.Context, questionID int64) (*domain.Question, error) {
	var q domain.Question
	err := r.db.GetContext(ctx, &q, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, questionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get question", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if err := r.loadChildren(ctx, []*domain.Question{&q}); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *Repository) ListQuestions(ctx context.Context, roundID int64) ([]*domain.Question, error) {
	questions := make([]*domain.Question, 0)
	query := `SELECT ` + questionColumns + ` FROM questions WHERE round_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &questions, query, roundID); err != nil {
		r.logger.Error("Failed to list questions", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if err := r.loadChildren(ctx, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// loadChildren fills test cases and buggy codes with one query each
func (r *Repository) loadChildren(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}
	ids := make([]int64, len(questions))
	byID := make(map[int64]*domain.Question, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		q.TestCases = make([]*domain.TestCase, 0)
		q.BuggyCodes = make([]*domain.BuggyCode, 0)
		byID[q.ID] = q
	}

	var tests []*domain.TestCase
	query := `SELECT ` + testCaseColumns + ` FROM test_cases WHERE question_id = ANY($1) ORDER BY question_id, position, id`
	if err := r.db.SelectContext(ctx, &tests, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to load test cases", "error", err)
		return fmt.Errorf("failed to load test cases: %w", err)
	}
	for _, tc := range tests {
		byID[tc.QuestionID].TestCases = append(byID[tc.QuestionID].TestCases, tc)
	}

	var codes []*domain.BuggyCode
	query = `SELECT ` + buggyCodeColumns + ` FROM buggy_codes WHERE question_id = ANY($1) ORDER BY question_id, id`
	if err := r.db.SelectContext(ctx, &codes, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to load buggy codes", "error", err)
		return fmt.Errorf("failed to load buggy codes: %w", err)
	}
	for _, bc := range codes {
		byID[bc.QuestionID].BuggyCodes = append(byID[bc.QuestionID].BuggyCodes, bc)
	}
	return nil
}

func (r *Repository) CountQuestions(ctx context.Context, roundID int64) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM questions WHERE round_id = $1`, roundID); err != nil {
		r.logger.Error("Failed to count questions", "roundId", roundID, "error", err)
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

func (r *Repository) ListTestCases(ctx context.Context, questionID int64) ([]*domain.TestCase, error) {
	tests := make([]*domain.TestCase, 0)
	query := `SELECT ` + testCaseColumns + ` FROM test_cases WHERE question_id = $1 ORDER BY position, id`
	if err := r.db.SelectContext(ctx, &tests, query, questionID); err != nil {
		r.logger.Error("Failed to list test cases", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}
	return tests, nil
}

func (r *Repository) CreateTestCase(ctx context.Context, testCase *domain.TestCase) error {
	query := `
		INSERT INTO test_cases (question_id, position, input, expected_output, is_hidden, description)
		SELECT $1, COALESCE(MAX(position) + 1, 0), $2, $3, $4, $5
		FROM test_cases WHERE question_id = $1
		RETURNING id, position
	`
	err := r.db.QueryRowxContext(ctx, query,
		testCase.QuestionID,
		testCase.Input,
		testCase.ExpectedOutput,
		testCase.IsHidden,
		testCase.Description,
	).Scan(&testCase.ID, &testCase.Position)
	if err != nil {
		r.logger.Error("Failed to create test case", "questionId", testCase.QuestionID, "error", err)
		return fmt.Errorf("failed to create test case: %w", mapError(err))
	}
	return nil
}

func (r *Repository) GetTestCase(ctx context.Context, testCaseID int64) (*domain.TestCase, error) {
	var tc domain.TestCase
	err := r.db.GetContext(ctx, &tc, `SELECT `+testCaseColumns+` FROM test_cases WHERE id = $1`, testCaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get test case", "testCaseId", testCaseID, "error", err)
		return nil, fmt.Errorf("failed to get test case: %w", err)
	}
	return &tc, nil
}

func (r *Repository) UpdateTestCase(ctx context.Context, testCase *domain.TestCase) error {
	query := `UPDATE test_cases SET input = $1, expected_output = $2, is_hidden = $3, description = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query,
		testCase.Input,
		testCase.ExpectedOutput,
		testCase.IsHidden,
		testCase.Description,
		testCase.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update test case", "testCaseId", testCase.ID, "error", err)
		return fmt.Errorf("failed to update test case: %w", err)
	}
	return nil
}

func (r *Repository) DeleteTestCase(ctx context.Context, testCaseID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM test_cases WHERE id = $1`, testCaseID); err != nil {
		r.logger.Error("Failed to delete test case", "testCaseId", testCaseID, "error", err)
		return fmt.Errorf("failed to delete test case: %w", err)
	}
	return nil
}

func (r *Repository) CreateBuggyCode(ctx context.Context, buggyCode *domain.BuggyCode) error {
	query := `INSERT INTO buggy_codes (question_id, language, code) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, buggyCode.QuestionID, buggyCode.Language, buggyCode.Code).Scan(&buggyCode.ID)
	if err != nil {
		r.logger.Error("Failed to create buggy code", "questionId", buggyCode.QuestionID, "error", err)
		return fmt.Errorf("failed to create buggy code: %w", mapError(err))
	}
	return nil
}

func (r *Repository) GetBuggyCode(ctx context.Context, buggyCodeID int64) (*domain.BuggyCode, error) {
	var bc domain.BuggyCode
	err := r.db.GetContext(ctx, &bc, `SELECT `+buggyCodeColumns+` FROM buggy_codes WHERE id = $1`, buggyCodeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get buggy code", "buggyCodeId", buggyCodeID, "error", err)
		return nil, fmt.Errorf("failed to get buggy code: %w", err)
	}
	return &bc, nil
}

func (r *Repository) UpdateBuggyCode(ctx context.Context, buggyCode *domain.BuggyCode) error {
	query := `UPDATE buggy_codes SET language = $1, code = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, buggyCode.Language, buggyCode.Code, buggyCode.ID); err != nil {
		r.logger.Error("Failed to update buggy code", "buggyCodeId", buggyCode.ID, "error", err)
		return fmt.Errorf("failed to update buggy code: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBuggyCode(ctx context.Context, buggyCodeID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM buggy_codes WHERE id = $1`, buggyCodeID); err != nil {
		r.logger.Error("Failed to delete buggy code", "buggyCodeId", buggyCodeID, "error", err)
		return fmt.Errorf("failed to delete buggy code: %w", err)
	}
	return nil
}
