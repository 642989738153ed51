package clierr

import "errors"

// Type categorizes a CLI-facing error for consistent messaging and exit codes.
type Type string

const (
	Validation Type = "validation"
	NotFound   Type = "not_found"
	Auth       Type = "auth"
	Remote     Type = "remote"
	Internal   Type = "internal"
)

// Error is a structured user-facing error.
type Error struct {
	Type    Type
	Message string
	Err     error // optional underlying error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// New constructs a new CLI Error.
func New(t Type, msg string, err error) *Error { return &Error{Type: t, Message: msg, Err: err} }

// exitCodes maps error types to process exit codes. 1 is left for untyped errors.
var exitCodes = map[Type]int{
	Validation: 2,
	NotFound:   3,
	Auth:       4,
	Remote:     5,
	Internal:   6,
}

// ExitCode returns the process exit code for err: 0 for nil, the code of its
// Type when err wraps an *Error, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		if code, ok := exitCodes[e.Type]; ok {
			return code
		}
	}
	return 1
}
