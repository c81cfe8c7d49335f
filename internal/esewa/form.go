package esewa

import "fmt"

// signedFormFields is the exact subset of form fields covered by the
// signature, in signing order. eSewa rejects the form if the order or the
// spelling differs.
const signedFormFields = "total_amount,transaction_uuid,product_code"

// FormRequest carries the cart-derived amounts for one payment attempt.
// Amounts are decimal strings without thousands separators.
type FormRequest struct {
	TransactionUUID string
	Amount          string
	TaxAmount       string
	TotalAmount     string
	DeliveryCharge  string
}

// BuildPaymentForm assembles the signed field set the client auto-submits to
// eSewa's hosted payment page, and returns the page URL alongside it.
//
// The total_amount placed in the canonical string and the one placed in the
// form must be byte-identical, so both come from the same sanitized value.
func (c *Client) BuildPaymentForm(req FormRequest) (string, map[string]string) {
	total := SanitizeAmount(req.TotalAmount)

	canonical := fmt.Sprintf(
		"total_amount=%s,transaction_uuid=%s,product_code=%s",
		total, req.TransactionUUID, c.productCode,
	)

	fields := map[string]string{
		"amount":                  SanitizeAmount(req.Amount),
		"tax_amount":              SanitizeAmount(req.TaxAmount),
		"total_amount":            total,
		"transaction_uuid":        req.TransactionUUID,
		"product_code":            c.productCode,
		"product_service_charge":  "0",
		"product_delivery_charge": SanitizeAmount(req.DeliveryCharge),
		"success_url":             c.successURL,
		"failure_url":             c.failureURL,
		"signed_field_names":      signedFormFields,
		"signature":               Sign(canonical, c.secretKey),
	}

	return c.formURL, fields
}
