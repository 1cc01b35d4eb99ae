package domain

type ExecutionRequest struct {
	Language string
	Version  string
	Code     string
	Stdin    string
}

// ExecutionOutput is the sandbox result of one run. CompileCode is nil when no compile stage ran.
type ExecutionOutput struct {
	Language      string
	Version       string
	Stdout        string
	Stderr        string
	Code          int
	Signal        string
	CompileCode   *int
	CompileStderr string
}

func (o *ExecutionOutput) CompileFailed() bool {
	return o.CompileCode != nil && *o.CompileCode != 0
}

type Runtime struct {
	Language string   `json:"language"`
	Version  string   `json:"version"`
	Aliases  []string `json:"aliases"`
}
