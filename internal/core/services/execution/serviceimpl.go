package execution

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ IExecutionService = (*ExecutionService)(nil)

type ExecutionService struct {
	executor secondary.CodeExecutor
	cache    secondary.RuntimeCache
	logger   primary.Logger
}

// NewExecutionService creates the service. cache may be nil, in which case every lookup asks the sandbox.
func NewExecutionService(executor secondary.CodeExecutor, cache secondary.RuntimeCache, logger primary.Logger) *ExecutionService {
	return &ExecutionService{
		executor: executor,
		cache:    cache,
		logger:   logger,
	}
}

func (s *ExecutionService) ResolveVersion(ctx context.Context, language string) (string, error) {
	lang := NormalizeLanguage(language)
	if lang == "" {
		return "", fmt.Errorf("%w: language is required", errs.ErrValidation)
	}

	runtimes, err := s.runtimes(ctx)
	if err != nil {
		return "", err
	}

	for _, rt := range runtimes {
		if rt.Language == lang {
			return rt.Version, nil
		}
		for _, alias := range rt.Aliases {
			if alias == lang {
				return rt.Version, nil
			}
		}
	}

	s.logger.Info("No runtime for language", "language", language)
	return "", fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, language)
}

func (s *ExecutionService) runtimes(ctx context.Context) ([]domain.Runtime, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Failed to read runtime cache", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	runtimes, err := s.executor.Runtimes(ctx)
	if err != nil {
		s.logger.Error("Failed to list runtimes", "error", err)
		return nil, fmt.Errorf("failed to list runtimes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, runtimes); err != nil {
			s.logger.Warn("Failed to write runtime cache", "error", err)
		}
	}
	return runtimes, nil
}

func (s *ExecutionService) Run(ctx context.Context, language, code, stdin string) (*RunOutput, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: code is required", errs.ErrValidation)
	}

	lang := NormalizeLanguage(language)
	version, err := s.ResolveVersion(ctx, lang)
	if err != nil {
		return nil, err
	}

	out, err := s.executor.Execute(ctx, &domain.ExecutionRequest{
		Language: lang,
		Version:  version,
		Code:     code,
		Stdin:    stdin,
	})
	if err != nil {
		s.logger.Error("Failed to run code", "language", lang, "error", err)
		return nil, fmt.Errorf("failed to run code: %w", err)
	}

	res := &RunOutput{
		Language: lang,
		Version:  version,
		Stdout:   out.Stdout,
		Stderr:   out.Stderr,
		ExitCode: out.Code,
		Compiled: !out.CompileFailed(),
	}
	switch {
	case out.CompileFailed():
		res.Output = out.CompileStderr
		res.ExitCode = *out.CompileCode
	case out.Stderr != "":
		res.Output = out.Stderr
	default:
		res.Output = out.Stdout
	}
	return res, nil
}
