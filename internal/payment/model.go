package payment

import (
	"aloeherbal-be/internal/esewa"
)

// Status is the host-side payment-session lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAuthorized Status = "AUTHORIZED"
	StatusCaptured   Status = "CAPTURED"
	StatusCanceled   Status = "CANCELED"
	StatusError      Status = "ERROR"
)

// MapGatewayStatus translates eSewa's status vocabulary into the host
// lifecycle. Total over any input; unknown values map to ERROR. Stateless —
// re-evaluated fresh on every poll, the host workflow decides terminality.
func MapGatewayStatus(gatewayStatus string) Status {
	switch gatewayStatus {
	case esewa.StatusComplete:
		return StatusAuthorized
	case esewa.StatusPending:
		return StatusPending
	case esewa.StatusCanceled:
		return StatusCanceled
	case esewa.StatusAmbiguous:
		return StatusPending
	case esewa.StatusNotFound:
		return StatusCanceled
	default:
		return StatusError
	}
}

const lastOperationKey = "last_operation"

// Session is one payment attempt. TransactionID is generated once at
// initiation and reused for every later call. Data is an opaque bag of
// last-known gateway fields; the marker it carries records which operation
// last wrote it and exists for debugging only.
type Session struct {
	TransactionID string                 `json:"transaction_id"`
	TotalAmount   string                 `json:"total_amount"`
	Status        Status                 `json:"status"`
	Data          map[string]interface{} `json:"data"`
}

// MergeData folds gateway fields into the session bag and stamps the
// operation marker.
func (s *Session) MergeData(operation string, fields map[string]interface{}) {
	if s.Data == nil {
		s.Data = make(map[string]interface{}, len(fields)+1)
	}
	for k, v := range fields {
		s.Data[k] = v
	}
	s.Data[lastOperationKey] = operation
}

// LastOperation returns the marker stamped by the most recent MergeData.
func (s *Session) LastOperation() string {
	if s.Data == nil {
		return ""
	}
	op, _ := s.Data[lastOperationKey].(string)
	return op
}
