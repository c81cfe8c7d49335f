package payment

import "errors"

var (
	// -- Resource State --
	ErrSessionNotFound = errors.New("payment session not found")

	// -- State reconciliation --
	ErrPaymentNotComplete = errors.New("gateway reports payment not complete")
)

// ProcessorError is the uniform failure shape every facade operation
// returns: a message, an optional machine code, and a detail string that
// chains nested processor errors so multi-hop failures stay diagnosable.
type ProcessorError struct {
	Message string `json:"error"`
	Code    string `json:"code"`
	Detail  string `json:"detail"`

	cause error
}

func (e *ProcessorError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *ProcessorError) Unwrap() error {
	return e.cause
}

// NewProcessorError wraps a cause into the uniform shape. A nested
// *ProcessorError contributes its message and its own detail chain; any
// other error contributes its text.
func NewProcessorError(message, code string, cause error) *ProcessorError {
	pe := &ProcessorError{Message: message, Code: code, cause: cause}

	var nested *ProcessorError
	switch {
	case cause == nil:
	case errors.As(cause, &nested):
		pe.Detail = nested.Message
		if nested.Detail != "" {
			pe.Detail += ": " + nested.Detail
		}
	default:
		pe.Detail = cause.Error()
	}

	return pe
}
