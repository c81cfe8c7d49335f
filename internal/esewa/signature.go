package esewa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Sign computes the eSewa message signature: base64 of HMAC-SHA256 over the
// UTF-8 bytes of message. Deterministic, no side effects.
func Sign(message, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	_, _ = mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyPayload recomputes the signature of a callback payload and compares
// it against payload.Signature in constant time.
//
// The canonical string is rebuilt strictly from the fields the payload
// declares in signed_field_names, joined as key=value pairs with commas.
// product_code is always taken from merchant configuration, never from the
// payload, so a forged payload cannot substitute another merchant's code.
func VerifyPayload(p *CallbackPayload, productCode, secretKey string) bool {
	if p == nil || p.SignedFieldNames == "" {
		return false
	}

	values := map[string]string{
		"transaction_code":   p.TransactionCode,
		"status":             p.Status,
		"total_amount":       p.TotalAmount,
		"transaction_uuid":   p.TransactionUUID,
		"product_code":       productCode,
		"signed_field_names": p.SignedFieldNames,
	}

	names := strings.Split(p.SignedFieldNames, ",")
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		value, ok := values[name]
		if !ok {
			// Unknown field in signed_field_names: nothing to sign over.
			return false
		}
		pairs = append(pairs, name+"="+value)
	}

	expected := Sign(strings.Join(pairs, ","), secretKey)
	return hmac.Equal([]byte(expected), []byte(p.Signature))
}
