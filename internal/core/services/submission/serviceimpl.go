package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/core/services/attempt"
	"gitlab.com/bugfix-arena.net/internal/core/services/evaluator"
	"gitlab.com/bugfix-arena.net/internal/core/services/execution"
	"gitlab.com/bugfix-arena.net/internal/core/services/leaderboard"
	"gitlab.com/bugfix-arena.net/internal/core/services/publisher"
	"gitlab.com/bugfix-arena.net/internal/core/services/scoring"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

// Dependencies groups the collaborators of SubmissionService
type Dependencies struct {
	Users       secondary.UserPort
	Rounds      secondary.RoundRepository
	Questions   secondary.QuestionRepository
	Submissions secondary.SubmissionRepository
	UnitOfWork  secondary.UnitOfWork
	Attempts    attempt.IAttemptTracker
	Execution   execution.IExecutionService
	Evaluator   evaluator.ITestEvaluator
	Aggregator  *leaderboard.Aggregator
	Publisher   publisher.ILivePublisher
	Logger      primary.Logger
}

type SubmissionService struct {
	Dependencies
	grace time.Duration
	now   func() time.Time
}

// NewSubmissionService creates the coordinator. grace extends the submission window past a round's end.
func NewSubmissionService(deps Dependencies, grace time.Duration) *SubmissionService {
	return &SubmissionService{
		Dependencies: deps,
		grace:        grace,
		now:          time.Now,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, cmd SubmitCommand) (*SubmissionResult, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}
	arrivedAt := s.now()

	user, err := s.Users.GetByID(ctx, cmd.UserID)
	if err != nil {
		s.Logger.Error("Failed to get user", "userId", cmd.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	round, err := s.Rounds.GetRound(ctx, cmd.RoundID)
	if err != nil {
		s.Logger.Error("Failed to get round", "roundId", cmd.RoundID, "error", err)
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, errs.ErrRoundNotFound
	}
	if !round.HasStarted() {
		return nil, errs.ErrRoundNotStarted
	}
	if round.ClosedAt(arrivedAt, s.grace) {
		s.Logger.Info("Late submission rejected", "roundId", round.ID, "userId", cmd.UserID)
		return nil, errs.ErrRoundClosed
	}

	question, err := s.Questions.GetQuestion(ctx, cmd.QuestionID)
	if err != nil {
		s.Logger.Error("Failed to get question", "questionId", cmd.QuestionID, "error", err)
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question == nil {
		return nil, errs.ErrQuestionNotFound
	}
	if question.RoundID != round.ID {
		return nil, errs.ErrQuestionMismatch
	}

	tests, err := s.Questions.ListTestCases(ctx, question.ID)
	if err != nil {
		s.Logger.Error("Failed to list test cases", "questionId", question.ID, "error", err)
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}
	if len(tests) == 0 {
		return nil, errs.ErrNoTestCases
	}

	if _, err := s.Attempts.CheckAndReserve(ctx, cmd.UserID, question.ID); err != nil {
		return nil, err
	}

	language := execution.NormalizeLanguage(cmd.Language)
	version, err := s.Execution.ResolveVersion(ctx, language)
	if err != nil {
		return nil, err
	}

	verdict, err := s.Evaluator.Evaluate(ctx, tests, cmd.Code, language, version)
	if err != nil {
		return nil, err
	}

	questionCount, err := s.Questions.CountQuestions(ctx, round.ID)
	if err != nil {
		s.Logger.Error("Failed to count questions", "roundId", round.ID, "error", err)
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	submittedAt := s.now()
	elapsed := round.Elapsed(submittedAt)

	res := &SubmissionResult{
		Verdict:     verdict,
		Solved:      verdict.Passed,
		PassedTests: verdict.PassedCount,
		TotalTests:  verdict.Total,
		Message:     message(verdict),
	}

	err = s.UnitOfWork.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		locked, err := tx.LockRound(ctx, round.ID)
		if err != nil {
			return fmt.Errorf("failed to lock round: %w", err)
		}

		uq, err := tx.LockUserQuestion(ctx, cmd.UserID, question.ID)
		if err != nil {
			return fmt.Errorf("failed to lock user question: %w", err)
		}
		if err := attempt.Check(uq); err != nil {
			return err
		}

		score := scoring.Score(locked.Weight, questionCount, uq.Attempts, verdict.Passed)

		sub := domain.NewSubmission(cmd.UserID, round.ID, question.ID, language, cmd.Code, submittedAt)
		sub.Attempt = attempt.Record(uq, verdict.Passed)
		sub.Score = score
		sub.IsCorrect = verdict.Passed
		sub.TimeTakenSeconds = elapsed

		if err := tx.CreateSubmission(ctx, sub); err != nil {
			return fmt.Errorf("failed to create submission: %w", err)
		}
		if err := tx.SaveUserQuestion(ctx, uq); err != nil {
			return fmt.Errorf("failed to save user question: %w", err)
		}

		row, _, err := s.Aggregator.ApplyResult(ctx, tx, round.ID, cmd.UserID, verdict.Passed, score, elapsed)
		if err != nil {
			return err
		}

		res.Submission = sub
		res.Leaderboard = row
		res.Score = score
		res.Attempts = uq.Attempts
		res.AttemptsRemaining = uq.Remaining()
		res.Disabled = uq.Disabled
		return nil
	})
	if err != nil {
		s.Logger.Error("Submission transaction failed", "userId", cmd.UserID, "questionId", question.ID, "error", err)
		return nil, err
	}

	s.Logger.Info("Submission recorded",
		"submissionId", res.Submission.ID,
		"userId", cmd.UserID,
		"roundId", round.ID,
		"questionId", question.ID,
		"attempt", res.Attempts,
		"passed", verdict.Passed,
		"score", res.Score)

	// committed results are broadcast even if the caller has gone
	s.Publisher.PublishLeaderboards(context.WithoutCancel(ctx), round.ID)

	summary, err := s.Submissions.ListUserRoundMarks(ctx, cmd.UserID, round.ID)
	if err != nil {
		s.Logger.Warn("Failed to load submission summary", "userId", cmd.UserID, "roundId", round.ID, "error", err)
		summary = []domain.SubmissionMark{}
	}
	res.Summary = summary

	return res, nil
}

func validate(cmd SubmitCommand) error {
	var missing []string
	if cmd.UserID <= 0 {
		missing = append(missing, "userId")
	}
	if cmd.RoundID <= 0 {
		missing = append(missing, "roundId")
	}
	if cmd.QuestionID <= 0 {
		missing = append(missing, "questionId")
	}
	if strings.TrimSpace(cmd.Code) == "" {
		missing = append(missing, "code")
	}
	if strings.TrimSpace(cmd.Language) == "" {
		missing = append(missing, "language")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", errs.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func message(v *domain.Verdict) string {
	if v.Passed {
		return "All tests passed"
	}
	return fmt.Sprintf("Failed on test %d", v.FailedIndex+1)
}

func (s *SubmissionService) ListRoundSubmissions(ctx context.Context, roundID int64) ([]*domain.SubmissionView, error) {
	round, err := s.Rounds.GetRound(ctx, roundID)
	if err != nil {
		s.Logger.Error("Failed to get round", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	if round == nil {
		return nil, errs.ErrRoundNotFound
	}

	subs, err := s.Submissions.ListRoundSubmissions(ctx, roundID)
	if err != nil {
		s.Logger.Error("Failed to list submissions", "roundId", roundID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

func (s *SubmissionService) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionView, error) {
	sub, err := s.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		s.Logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if sub == nil {
		return nil, errs.ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *SubmissionService) SolvedQuestions(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.Submissions.SolvedQuestionIDs(ctx, userID)
	if err != nil {
		s.Logger.Error("Failed to list solved questions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list solved questions: %w", err)
	}
	return ids, nil
}
