package esewa

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// CallbackPayload is the base64-encoded JSON eSewa hands to the payer's
// browser on redirect. It is attacker-controlled input: the status field is
// a hint, never authoritative on its own.
type CallbackPayload struct {
	TransactionCode  string `json:"transaction_code"`
	Status           string `json:"status"`
	TotalAmount      string `json:"total_amount"`
	TransactionUUID  string `json:"transaction_uuid"`
	ProductCode      string `json:"product_code"`
	SignedFieldNames string `json:"signed_field_names"`
	Signature        string `json:"signature"`
}

// DecodePayload base64-decodes and JSON-parses a browser-delivered callback
// payload. Malformed input wraps ErrMalformedPayload.
func DecodePayload(encoded string) (*CallbackPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var payload CallbackPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return &payload, nil
}
