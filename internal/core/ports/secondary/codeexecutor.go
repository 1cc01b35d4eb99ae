package secondary

import (
	"context"

	"gitlab.com/bugfix-arena.net/internal/domain"
)

type CodeExecutor interface {
	// Execute runs code once with the given stdin
	Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionOutput, error)

	// Runtimes lists the languages and versions the sandbox supports
	Runtimes(ctx context.Context) ([]domain.Runtime, error)
}

// RuntimeCache keeps the sandbox runtime list between submissions
type RuntimeCache interface {
	Get(ctx context.Context) ([]domain.Runtime, bool, error)
	Set(ctx context.Context, runtimes []domain.Runtime) error
}
