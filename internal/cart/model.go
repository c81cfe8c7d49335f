package cart

// cartRow mirrors the carts table amounts. Stored as numerics; the service
// layer formats them into the decimal strings the gateway expects.
type cartRow struct {
	ID             string
	Amount         float64
	TaxAmount      float64
	DeliveryCharge float64
}

// Totals carries the checkout amounts for one cart as decimal strings
// without thousands separators, ready to be signed and sent as-is.
type Totals struct {
	CartID         string
	Amount         string
	TaxAmount      string
	DeliveryCharge string
	TotalAmount    string
}
