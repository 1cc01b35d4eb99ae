package errs

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("resource conflict")

	ErrUserNotFound       = errors.New("user not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrTestCaseNotFound   = errors.New("test case not found")
	ErrBuggyCodeNotFound  = errors.New("buggy code not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	ErrRoundNotStarted   = errors.New("round has not started")
	ErrRoundClosed       = errors.New("round is closed")
	ErrQuestionMismatch  = errors.New("question does not belong to round")
	ErrNoTestCases       = errors.New("question has no test cases")
	ErrAlreadySolved     = errors.New("question already solved")
	ErrAttemptsExhausted = errors.New("maximum attempts reached")
	ErrRoundNotEditable  = errors.New("round is not editable")
	ErrInvalidTransition = errors.New("invalid round status transition")

	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrExecutionService    = errors.New("execution service error")
)

// Class groups errors by how a caller should react to them.
type Class int

const (
	ClassInternal Class = iota
	ClassValidation
	ClassNotFound
	ClassPolicy
	ClassExternal
	ClassConflict
	ClassAuth
	ClassForbidden
)

func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassNotFound:
		return "not_found"
	case ClassPolicy:
		return "policy"
	case ClassExternal:
		return "execution_failed"
	case ClassConflict:
		return "conflict"
	case ClassAuth:
		return "unauthorized"
	case ClassForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

type classified struct {
	err   error
	class Class
}

var classTable = []classified{
	{ErrValidation, ClassValidation},
	{ErrQuestionMismatch, ClassValidation},
	{ErrUserNotFound, ClassNotFound},
	{ErrRoundNotFound, ClassNotFound},
	{ErrQuestionNotFound, ClassNotFound},
	{ErrTestCaseNotFound, ClassNotFound},
	{ErrBuggyCodeNotFound, ClassNotFound},
	{ErrSubmissionNotFound, ClassNotFound},
	{ErrRoundNotStarted, ClassPolicy},
	{ErrRoundClosed, ClassPolicy},
	{ErrNoTestCases, ClassPolicy},
	{ErrAlreadySolved, ClassPolicy},
	{ErrAttemptsExhausted, ClassPolicy},
	{ErrRoundNotEditable, ClassPolicy},
	{ErrInvalidTransition, ClassPolicy},
	{ErrUnsupportedLanguage, ClassExternal},
	{ErrExecutionService, ClassExternal},
	{ErrConflict, ClassConflict},
	{InvalidCredentials, ClassAuth},
	{Unauthorized, ClassAuth},
	{Forbidden, ClassForbidden},
}

// ClassOf returns the class of the first known sentinel wrapped by err.
func ClassOf(err error) Class {
	for _, c := range classTable {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return ClassInternal
}
