package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

type fakeExecutor struct {
	runtimes     []domain.Runtime
	runtimeCalls int
	out          *domain.ExecutionOutput
	last         *domain.ExecutionRequest
	err          error
}

func (f *fakeExecutor) Execute(_ context.Context, req *domain.ExecutionRequest) (*domain.ExecutionOutput, error) {
	f.last = req
	return f.out, f.err
}

func (f *fakeExecutor) Runtimes(context.Context) ([]domain.Runtime, error) {
	f.runtimeCalls++
	return f.runtimes, f.err
}

type mapCache struct {
	runtimes []domain.Runtime
	ok       bool
	failGet  bool
}

func (c *mapCache) Get(context.Context) ([]domain.Runtime, bool, error) {
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	return c.runtimes, c.ok, nil
}

func (c *mapCache) Set(_ context.Context, runtimes []domain.Runtime) error {
	c.runtimes, c.ok = runtimes, true
	return nil
}

var sandboxRuntimes = []domain.Runtime{
	{Language: "python", Version: "3.10.0", Aliases: []string{"py", "python3"}},
	{Language: "c++", Version: "10.2.0", Aliases: []string{"cpp", "g++"}},
}

func TestResolveVersion(t *testing.T) {
	exec := &fakeExecutor{runtimes: sandboxRuntimes}
	svc := NewExecutionService(exec, nil, logging.NewNopLogger())

	v, err := svc.ResolveVersion(context.Background(), "cpp")
	require.NoError(t, err)
	assert.Equal(t, "10.2.0", v)

	v, err = svc.ResolveVersion(context.Background(), "Python")
	require.NoError(t, err)
	assert.Equal(t, "3.10.0", v)

	_, err = svc.ResolveVersion(context.Background(), "cobol")
	assert.ErrorIs(t, err, errs.ErrUnsupportedLanguage)
}

func TestResolveVersion_UsesCache(t *testing.T) {
	exec := &fakeExecutor{runtimes: sandboxRuntimes}
	cache := &mapCache{}
	svc := NewExecutionService(exec, cache, logging.NewNopLogger())

	for i := 0; i < 3; i++ {
		_, err := svc.ResolveVersion(context.Background(), "python")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, exec.runtimeCalls)
}

func TestResolveVersion_CacheFailureFallsBack(t *testing.T) {
	exec := &fakeExecutor{runtimes: sandboxRuntimes}
	svc := NewExecutionService(exec, &mapCache{failGet: true}, logging.NewNopLogger())

	v, err := svc.ResolveVersion(context.Background(), "python")
	require.NoError(t, err)
	assert.Equal(t, "3.10.0", v)
}

func TestResolveVersion_SandboxDown(t *testing.T) {
	exec := &fakeExecutor{err: errs.ErrExecutionService}
	svc := NewExecutionService(exec, nil, logging.NewNopLogger())

	_, err := svc.ResolveVersion(context.Background(), "python")
	assert.ErrorIs(t, err, errs.ErrExecutionService)
}

func TestRun(t *testing.T) {
	one := 1
	tests := []struct {
		name string
		out  *domain.ExecutionOutput
		want string
	}{
		{"stdout", &domain.ExecutionOutput{Stdout: "hello\n"}, "hello\n"},
		{"stderr wins", &domain.ExecutionOutput{Stdout: "partial", Stderr: "Traceback", Code: 1}, "Traceback"},
		{"compile error", &domain.ExecutionOutput{CompileCode: &one, CompileStderr: "error: expected ';'"}, "error: expected ';'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{runtimes: sandboxRuntimes, out: tt.out}
			svc := NewExecutionService(exec, nil, logging.NewNopLogger())

			res, err := svc.Run(context.Background(), "cpp", "int main(){}", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Output)
			assert.Equal(t, "c++", exec.last.Language)
			assert.Equal(t, "10.2.0", exec.last.Version)
		})
	}
}

func TestRun_EmptyCode(t *testing.T) {
	svc := NewExecutionService(&fakeExecutor{}, nil, logging.NewNopLogger())
	_, err := svc.Run(context.Background(), "python", "  ", "")
	assert.ErrorIs(t, err, errs.ErrValidation)
}
