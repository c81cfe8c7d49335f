package esewa

import (
	"errors"
	"fmt"
)

var (
	// -- Callback validation --
	ErrMalformedPayload = errors.New("malformed callback payload")

	// -- Signature --
	ErrSignatureMismatch = errors.New("callback signature mismatch")
)

// CommunicationError is returned when the status-check call to eSewa fails
// at the transport level or with a non-2xx response. It always carries the
// underlying detail; a failed check never degrades into a default status.
type CommunicationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *CommunicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("esewa status check request: %v", e.Err)
	}
	return fmt.Sprintf("esewa http %d: %s", e.StatusCode, e.Body)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}
