package domain

type FailureKind string

const (
	FailureNone           FailureKind = ""
	FailureRuntimeError   FailureKind = "RuntimeError"
	FailureOutputMismatch FailureKind = "OutputMismatch"
)

// Verdict is the outcome of running a submission against a question's test cases.
// FailedIndex is zero based and -1 when every case passed.
type Verdict struct {
	Passed      bool        `json:"passed"`
	Total       int         `json:"totalTests"`
	PassedCount int         `json:"passedTests"`
	FailedIndex int         `json:"failedIndex"`
	Kind        FailureKind `json:"failureKind,omitempty"`
	Stderr      string      `json:"-"`
}
