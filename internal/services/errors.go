package services

import "errors"

// ErrorKind is the closed set of failures a chat call can end in.
type ErrorKind int

const (
	KindConfig ErrorKind = iota + 1
	KindValidation
	KindProvider
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindProvider:
		return "provider"
	default:
		return "unknown"
	}
}

// ErrNoStructuredOutput means the provider answered but gave nothing that
// fits the row schema.
var ErrNoStructuredOutput = errors.New("model did not return usable structured output")

// Error is returned by ChatService. Message is safe to show to callers; Err
// keeps the cause for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationFailed wraps a decoding error from the validation package.
func ValidationFailed(err error) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Err: err}
}
