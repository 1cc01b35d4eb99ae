package attempt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

type stubRepo struct {
	uq  *domain.UserQuestion
	err error
}

func (s stubRepo) GetUserQuestion(context.Context, int64, int64) (*domain.UserQuestion, error) {
	return s.uq, s.err
}

func (s stubRepo) GetSubmission(context.Context, uuid.UUID) (*domain.SubmissionView, error) {
	return nil, nil
}

func (s stubRepo) ListRoundSubmissions(context.Context, int64) ([]*domain.SubmissionView, error) {
	return nil, nil
}

func (s stubRepo) ListUserRoundMarks(context.Context, int64, int64) ([]domain.SubmissionMark, error) {
	return nil, nil
}

func (s stubRepo) SolvedQuestionIDs(context.Context, int64) ([]int64, error) {
	return nil, nil
}

func TestCheckAndReserve(t *testing.T) {
	tests := []struct {
		name    string
		uq      *domain.UserQuestion
		want    int
		wantErr error
	}{
		{"first submission", nil, 0, nil},
		{"one failed attempt", &domain.UserQuestion{Attempts: 1}, 1, nil},
		{"last attempt left", &domain.UserQuestion{Attempts: 2}, 2, nil},
		{"exhausted", &domain.UserQuestion{Attempts: 3}, 0, errs.ErrAttemptsExhausted},
		{"solved", &domain.UserQuestion{Attempts: 1, Disabled: true}, 0, errs.ErrAlreadySolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewAttemptTracker(stubRepo{uq: tt.uq}, logging.NewNopLogger())
			got, err := tracker.CheckAndReserve(context.Background(), 1, 2)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckAndReserve_DoesNotMutate(t *testing.T) {
	uq := &domain.UserQuestion{Attempts: 1}
	tracker := NewAttemptTracker(stubRepo{uq: uq}, logging.NewNopLogger())
	_, err := tracker.CheckAndReserve(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, uq.Attempts)
}

func TestCheckAndReserve_RepoError(t *testing.T) {
	boom := errors.New("db down")
	tracker := NewAttemptTracker(stubRepo{err: boom}, logging.NewNopLogger())
	_, err := tracker.CheckAndReserve(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
}

func TestRecord(t *testing.T) {
	uq := &domain.UserQuestion{}
	assert.Equal(t, 1, Record(uq, false))
	assert.False(t, uq.Disabled)
	assert.Equal(t, 2, Record(uq, true))
	assert.True(t, uq.Disabled)
	assert.ErrorIs(t, Check(uq), errs.ErrAlreadySolved)
}

func TestRecord_DisabledNeverResets(t *testing.T) {
	uq := &domain.UserQuestion{Attempts: 1, Disabled: true}
	Record(uq, false)
	assert.True(t, uq.Disabled)
}

func TestRecord_ExhaustionBlocksFurtherSubmissions(t *testing.T) {
	uq := &domain.UserQuestion{}
	for i := 0; i < domain.MaxAttempts; i++ {
		require.NoError(t, Check(uq))
		Record(uq, false)
	}
	assert.Equal(t, domain.MaxAttempts, uq.Attempts)
	assert.ErrorIs(t, Check(uq), errs.ErrAttemptsExhausted)
}
