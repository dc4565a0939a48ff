package errcode

import "errors"

// Code is a stable error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }
func (c Code) Code() Code    { return c }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	Unsupported    Code = "unsupported"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	NotConfigured  Code = "not_configured"

	UnknownPin     Code = "unknown_pin"
	UnknownChannel Code = "unknown_channel"
	Conflict       Code = "conflict"

	Error Code = "error" // generic fallback
)

// E wraps a Code with the operation and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// New returns an *E without a cause.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Wrap returns an *E carrying err as its cause. A nil err yields nil.
func Wrap(c Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: c, Op: op, Msg: err.Error(), Err: err}
}

// Of extracts the outermost Code in err's chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	var x interface{ Code() Code }
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}
