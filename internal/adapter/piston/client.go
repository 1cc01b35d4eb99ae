// Package piston talks to a Piston code execution sandbox over HTTP.
package piston

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gitlab.com/bugfix-arena.net/internal/config"
	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Client)(nil)

const maxResponseBytes = 4 << 20

type executeRequest struct {
	Language       string `json:"language"`
	Version        string `json:"version"`
	Files          []file `json:"files"`
	Stdin          string `json:"stdin"`
	RunTimeout     int    `json:"run_timeout,omitempty"`
	CompileTimeout int    `json:"compile_timeout,omitempty"`
}

type file struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// stage fields are pointers so that missing keys can be told apart from zero values
type stage struct {
	Stdout *string `json:"stdout"`
	Stderr *string `json:"stderr"`
	Code   *int    `json:"code"`
	Signal *string `json:"signal"`
}

type executeResponse struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Run      *stage `json:"run"`
	Compile  *stage `json:"compile"`
	Message  string `json:"message"`
}

type runtimeResponse struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	runTimeout     int
	compileTimeout int
	logger         primary.Logger
}

func NewClient(cfg *config.PistonConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		runTimeout:     cfg.RunTimeoutMs,
		compileTimeout: cfg.CompileTimeoutMs,
		logger:         logger,
	}
}

func (c *Client) Execute(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionOutput, error) {
	body, err := json.Marshal(executeRequest{
		Language:       req.Language,
		Version:        req.Version,
		Files:          []file{{Name: FileName(req.Language), Content: req.Code}},
		Stdin:          req.Stdin,
		RunTimeout:     c.runTimeout,
		CompileTimeout: c.compileTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode execute request: %w", err)
	}

	var resp executeResponse
	if err := c.do(ctx, http.MethodPost, "/execute", body, &resp); err != nil {
		return nil, err
	}
	return toOutput(&resp)
}

func (c *Client) Runtimes(ctx context.Context) ([]domain.Runtime, error) {
	var resp []runtimeResponse
	if err := c.do(ctx, http.MethodGet, "/runtimes", nil, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Runtime, 0, len(resp))
	for _, r := range resp {
		if r.Language == "" || r.Version == "" {
			return nil, fmt.Errorf("%w: runtime entry without language or version", errs.ErrExecutionService)
		}
		out = append(out, domain.Runtime{Language: r.Language, Version: r.Version, Aliases: r.Aliases})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, into interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build sandbox request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Sandbox request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", errs.ErrExecutionService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", errs.ErrExecutionService, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Sandbox returned error status", "path", path, "status", resp.StatusCode, "body", string(raw))
		return fmt.Errorf("%w: status %d", errs.ErrExecutionService, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("%w: malformed response: %v", errs.ErrExecutionService, err)
	}
	return nil
}

func toOutput(resp *executeResponse) (*domain.ExecutionOutput, error) {
	if resp.Run == nil {
		msg := resp.Message
		if msg == "" {
			msg = "response has no run stage"
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrExecutionService, msg)
	}
	if resp.Run.Code == nil && resp.Run.Signal == nil {
		return nil, fmt.Errorf("%w: run stage has no exit code", errs.ErrExecutionService)
	}
	if resp.Run.Stdout == nil {
		return nil, fmt.Errorf("%w: run stage has no stdout", errs.ErrExecutionService)
	}

	out := &domain.ExecutionOutput{
		Language: resp.Language,
		Version:  resp.Version,
		Stdout:   *resp.Run.Stdout,
		Stderr:   deref(resp.Run.Stderr),
		Signal:   deref(resp.Run.Signal),
	}
	if resp.Run.Code != nil {
		out.Code = *resp.Run.Code
	} else {
		// killed by a signal, e.g. SIGKILL on timeout
		out.Code = -1
	}

	if resp.Compile != nil && resp.Compile.Code != nil {
		code := *resp.Compile.Code
		out.CompileCode = &code
		out.CompileStderr = deref(resp.Compile.Stderr)
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
