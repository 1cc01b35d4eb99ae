package piston

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/config"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.PistonConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, RunTimeoutMs: 3000}, logging.NewNopLogger())
}

func TestExecute(t *testing.T) {
	var got executeRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/execute", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"language":"java","version":"15.0.2","run":{"stdout":"4\n","stderr":"","code":0,"signal":null}}`))
	})

	out, err := client.Execute(context.Background(), &domain.ExecutionRequest{Language: "java", Version: "15.0.2", Code: "class Main {}", Stdin: "2"})
	require.NoError(t, err)
	assert.Equal(t, "4\n", out.Stdout)
	assert.Equal(t, 0, out.Code)
	assert.False(t, out.CompileFailed())

	require.Len(t, got.Files, 1)
	assert.Equal(t, "Main.java", got.Files[0].Name)
	assert.Equal(t, "2", got.Stdin)
	assert.Equal(t, 3000, got.RunTimeout)
}

func TestExecute_CompileFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"run":{"stdout":"","stderr":"","code":0},"compile":{"stdout":"","stderr":"main.cpp:1: error","code":1}}`))
	})

	out, err := client.Execute(context.Background(), &domain.ExecutionRequest{Language: "c++", Version: "10.2.0", Code: "int main("})
	require.NoError(t, err)
	assert.True(t, out.CompileFailed())
	assert.Equal(t, "main.cpp:1: error", out.CompileStderr)
}

func TestExecute_KilledBySignal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"run":{"stdout":"","stderr":"","code":null,"signal":"SIGKILL"}}`))
	})

	out, err := client.Execute(context.Background(), &domain.ExecutionRequest{Language: "python", Code: "while True: pass"})
	require.NoError(t, err)
	assert.Equal(t, -1, out.Code)
	assert.Equal(t, "SIGKILL", out.Signal)
}

func TestExecute_StrictSchema(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no run stage", http.StatusOK, `{"language":"python"}`},
		{"run without code", http.StatusOK, `{"run":{"stdout":"x"}}`},
		{"run without stdout", http.StatusOK, `{"run":{"code":0}}`},
		{"not json", http.StatusOK, `<html>`},
		{"bad request", http.StatusBadRequest, `{"message":"runtime is unknown"}`},
		{"server error", http.StatusInternalServerError, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := client.Execute(context.Background(), &domain.ExecutionRequest{Language: "python", Code: "print(1)"})
			assert.ErrorIs(t, err, errs.ErrExecutionService)
		})
	}
}

func TestExecute_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(&config.PistonConfig{BaseURL: srv.URL, Timeout: time.Second}, logging.NewNopLogger())

	_, err := client.Execute(context.Background(), &domain.ExecutionRequest{Language: "python", Code: "print(1)"})
	assert.ErrorIs(t, err, errs.ErrExecutionService)
}

func TestRuntimes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runtimes", r.URL.Path)
		_, _ = w.Write([]byte(`[{"language":"python","version":"3.10.0","aliases":["py","py3"]},{"language":"c++","version":"10.2.0","aliases":["cpp"]}]`))
	})

	rts, err := client.Runtimes(context.Background())
	require.NoError(t, err)
	require.Len(t, rts, 2)
	assert.Equal(t, domain.Runtime{Language: "python", Version: "3.10.0", Aliases: []string{"py", "py3"}}, rts[0])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "main.py", FileName("python"))
	assert.Equal(t, "index.ts", FileName("typescript"))
	assert.Equal(t, "main", FileName("brainfuck"))
}
