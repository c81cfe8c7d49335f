package payment

import "context"

// Callback handling outcomes.
const (
	CallbackComplete    = "complete"
	CallbackNotComplete = "not_complete"
)

// InitiateResult is what the checkout flow needs for the client-side
// auto-redirect: the hosted page URL and the signed form fields, plus the
// session the host workflow keeps for later calls.
type InitiateResult struct {
	FormURL string            `json:"form_url"`
	Fields  map[string]string `json:"fields"`
	Session *Session          `json:"session"`
}

// CallbackResult is the verdict on one browser-delivered callback. Data
// carries the merged payload and gateway fields for the HTTP response.
type CallbackResult struct {
	Status string
	Data   map[string]interface{}
}

// Provider is the lifecycle contract the order workflow expects from a
// payment provider. Implementations hold no per-transaction state; all
// state lives in the Session the caller passes in and receives back, so
// separate transaction ids can run concurrently without locking.
type Provider interface {
	InitiatePayment(ctx context.Context, cartID string) (*InitiateResult, error)
	UpdatePayment(ctx context.Context, cartID string) (*InitiateResult, error)
	AuthorizePayment(ctx context.Context, session *Session) (*Session, error)
	CapturePayment(ctx context.Context, session *Session) (map[string]interface{}, error)
	CancelPayment(ctx context.Context, session *Session) (map[string]interface{}, error)
	RefundPayment(ctx context.Context, session *Session, amount string) (map[string]interface{}, error)
	DeletePayment(ctx context.Context, session *Session) (map[string]interface{}, error)
	RetrievePayment(ctx context.Context, session *Session) (map[string]interface{}, error)
	GetPaymentStatus(ctx context.Context, session *Session) Status
	UpdatePaymentData(ctx context.Context, transactionID string, data map[string]interface{}) (map[string]interface{}, error)
	HandleCallback(ctx context.Context, encodedData string) (*CallbackResult, error)
}
