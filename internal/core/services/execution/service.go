package execution

import (
	"context"
)

// RunOutput is what a participant sees after a free run of their code
type RunOutput struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Output   string `json:"output"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
	Compiled bool   `json:"compiled"`
}

type IExecutionService interface {
	// ResolveVersion returns the sandbox version for a language
	ResolveVersion(ctx context.Context, language string) (string, error)

	// Run executes code once with stdin, outside of any scoring
	Run(ctx context.Context, language, code, stdin string) (*RunOutput, error)
}
