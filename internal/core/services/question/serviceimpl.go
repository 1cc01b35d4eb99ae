package question

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/core/services/execution"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ IQuestionService = (*QuestionService)(nil)

type QuestionService struct {
	rounds    secondary.RoundRepository
	questions secondary.QuestionRepository
	logger    primary.Logger
}

func NewQuestionService(
	rounds secondary.RoundRepository,
	questions secondary.QuestionRepository,
	logger primary.Logger,
) *QuestionService {
	return &QuestionService{
		rounds:    rounds,
		questions: questions,
		logger:    logger,
	}
}

func (s *QuestionService) getRound(ctx context.Context, roundID int64) (*domain.Round, error) {
	round, err := s.rounds.GetRound(ctx, roundID)
	if err != nil {
		s.logger.Error("Failed to get round", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, errs.ErrRoundNotFound
	}
	return round, nil
}

func (s *QuestionService) editableRound(ctx context.Context, roundID int64) error {
	round, err := s.getRound(ctx, roundID)
	if err != nil {
		return err
	}
	if !round.IsEditable() {
		return errs.ErrRoundNotEditable
	}
	return nil
}

// editableQuestion loads a question whose round still accepts changes
func (s *QuestionService) editableQuestion(ctx context.Context, questionID int64) (*domain.Question, error) {
	q, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		s.logger.Error("Failed to get question", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if q == nil {
		return nil, errs.ErrQuestionNotFound
	}
	if err := s.editableRound(ctx, q.RoundID); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) CreateQuestion(ctx context.Context, roundID int64, in QuestionInput) (*domain.Question, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	if err := s.editableRound(ctx, roundID); err != nil {
		return nil, err
	}

	q := &domain.Question{RoundID: roundID, Title: title, Description: in.Description}
	if err := s.questions.CreateQuestion(ctx, q); err != nil {
		s.logger.Error("Failed to create question", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	s.logger.Info("Question created", "roundId", roundID, "questionId", q.ID)
	return q, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, questionID int64, in QuestionInput) (*domain.Question, error) {
	q, err := s.editableQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		q.Title = title
	}
	q.Description = in.Description

	if err := s.questions.UpdateQuestion(ctx, q); err != nil {
		s.logger.Error("Failed to update question", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return q, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID int64) error {
	if _, err := s.editableQuestion(ctx, questionID); err != nil {
		return err
	}
	if err := s.questions.DeleteQuestion(ctx, questionID); err != nil {
		s.logger.Error("Failed to delete question", "questionId", questionID, "error", err)
		return fmt.Errorf("failed to delete question: %w", err)
	}
	s.logger.Info("Question deleted", "questionId", questionID)
	return nil
}

func (s *QuestionService) AddTestCase(ctx context.Context, questionID int64, in TestCaseInput) (*domain.TestCase, error) {
	if _, err := s.editableQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	tc := &domain.TestCase{
		QuestionID:     questionID,
		Input:          in.Input,
		ExpectedOutput: in.ExpectedOutput,
		IsHidden:       in.IsHidden,
		Description:    in.Description,
	}
	if err := s.questions.CreateTestCase(ctx, tc); err != nil {
		s.logger.Error("Failed to create test case", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to create test case: %w", err)
	}
	return tc, nil
}

func (s *QuestionService) editableTestCase(ctx context.Context, testCaseID int64) (*domain.TestCase, error) {
	tc, err := s.questions.GetTestCase(ctx, testCaseID)
	if err != nil {
		s.logger.Error("Failed to get test case", "testCaseId", testCaseID, "error", err)
		return nil, fmt.Errorf("failed to get test case: %w", err)
	}
	if tc == nil {
		return nil, errs.ErrTestCaseNotFound
	}
	if _, err := s.editableQuestion(ctx, tc.QuestionID); err != nil {
		return nil, err
	}
	return tc, nil
}

// UpdateTestCase replaces the content of a test case and keeps its position
func (s *QuestionService) UpdateTestCase(ctx context.Context, testCaseID int64, in TestCaseInput) (*domain.TestCase, error) {
	tc, err := s.editableTestCase(ctx, testCaseID)
	if err != nil {
		return nil, err
	}
	tc.Input = in.Input
	tc.ExpectedOutput = in.ExpectedOutput
	tc.IsHidden = in.IsHidden
	tc.Description = in.Description

	if err := s.questions.UpdateTestCase(ctx, tc); err != nil {
		s.logger.Error("Failed to update test case", "testCaseId", testCaseID, "error", err)
		return nil, fmt.Errorf("failed to update test case: %w", err)
	}
	return tc, nil
}

func (s *QuestionService) DeleteTestCase(ctx context.Context, testCaseID int64) error {
	if _, err := s.editableTestCase(ctx, testCaseID); err != nil {
		return err
	}
	if err := s.questions.DeleteTestCase(ctx, testCaseID); err != nil {
		s.logger.Error("Failed to delete test case", "testCaseId", testCaseID, "error", err)
		return fmt.Errorf("failed to delete test case: %w", err)
	}
	return nil
}

func (s *QuestionService) AddBuggyCode(ctx context.Context, questionID int64, in BuggyCodeInput) (*domain.BuggyCode, error) {
	language := execution.NormalizeLanguage(in.Language)
	if language == "" || strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: language and code are required", errs.ErrValidation)
	}
	if _, err := s.editableQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	bc := &domain.BuggyCode{QuestionID: questionID, Language: language, Code: in.Code}
	if err := s.questions.CreateBuggyCode(ctx, bc); err != nil {
		s.logger.Error("Failed to create buggy code", "questionId", questionID, "error", err)
		return nil, fmt.Errorf("failed to create buggy code: %w", err)
	}
	return bc, nil
}

func (s *QuestionService) editableBuggyCode(ctx context.Context, buggyCodeID int64) (*domain.BuggyCode, error) {
	bc, err := s.questions.GetBuggyCode(ctx, buggyCodeID)
	if err != nil {
		s.logger.Error("Failed to get buggy code", "buggyCodeId", buggyCodeID, "error", err)
		return nil, fmt.Errorf("failed to get buggy code: %w", err)
	}
	if bc == nil {
		return nil, errs.ErrBuggyCodeNotFound
	}
	if _, err := s.editableQuestion(ctx, bc.QuestionID); err != nil {
		return nil, err
	}
	return bc, nil
}

func (s *QuestionService) UpdateBuggyCode(ctx context.Context, buggyCodeID int64, in BuggyCodeInput) (*domain.BuggyCode, error) {
	language := execution.NormalizeLanguage(in.Language)
	if language == "" || strings.TrimSpace(in.Code) == "" {
		return nil, fmt.Errorf("%w: language and code are required", errs.ErrValidation)
	}
	bc, err := s.editableBuggyCode(ctx, buggyCodeID)
	if err != nil {
		return nil, err
	}
	bc.Language = language
	bc.Code = in.Code

	if err := s.questions.UpdateBuggyCode(ctx, bc); err != nil {
		s.logger.Error("Failed to update buggy code", "buggyCodeId", buggyCodeID, "error", err)
		return nil, fmt.Errorf("failed to update buggy code: %w", err)
	}
	return bc, nil
}

func (s *QuestionService) DeleteBuggyCode(ctx context.Context, buggyCodeID int64) error {
	if _, err := s.editableBuggyCode(ctx, buggyCodeID); err != nil {
		return err
	}
	if err := s.questions.DeleteBuggyCode(ctx, buggyCodeID); err != nil {
		s.logger.Error("Failed to delete buggy code", "buggyCodeId", buggyCodeID, "error", err)
		return fmt.Errorf("failed to delete buggy code: %w", err)
	}
	return nil
}

func (s *QuestionService) ListForParticipant(ctx context.Context, roundID int64) ([]*domain.Question, error) {
	round, err := s.getRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if !round.HasStarted() {
		return nil, errs.ErrRoundNotStarted
	}

	all, err := s.list(ctx, roundID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Question, 0, len(all))
	for _, q := range all {
		out = append(out, q.ForParticipant())
	}
	return out, nil
}

func (s *QuestionService) ListForAdmin(ctx context.Context, roundID int64) ([]*domain.Question, error) {
	if _, err := s.getRound(ctx, roundID); err != nil {
		return nil, err
	}
	return s.list(ctx, roundID)
}

func (s *QuestionService) list(ctx context.Context, roundID int64) ([]*domain.Question, error) {
	qs, err := s.questions.ListQuestions(ctx, roundID)
	if err != nil {
		s.logger.Error("Failed to list questions", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return qs, nil
}
