package payment

import (
	"context"
	"errors"
	"fmt"

	"aloeherbal-be/internal/cart"
	"aloeherbal-be/internal/esewa"
	"aloeherbal-be/internal/logger"

	"go.uber.org/zap"
)

// Gateway is the slice of the eSewa client the processor needs.
// *esewa.Client satisfies it; tests inject their own.
type Gateway interface {
	CheckStatus(ctx context.Context, transactionUUID, totalAmount string) (*esewa.StatusResponse, error)
	BuildPaymentForm(req esewa.FormRequest) (string, map[string]string)
	ProductCode() string
	SecretKey() string
}

type esewaProcessor struct {
	client   Gateway
	carts    cart.Service
	sessions Repository

	// verifySignature gates the HMAC check on inbound callbacks. Default on.
	// Even when off, the gateway cross-check remains the trust anchor.
	verifySignature bool
}

// NewEsewaProcessor wires the eSewa client, the commerce totals service and
// the session store into the Provider lifecycle.
func NewEsewaProcessor(client Gateway, carts cart.Service, sessions Repository, verifySignature bool) Provider {
	return &esewaProcessor{
		client:          client,
		carts:           carts,
		sessions:        sessions,
		verifySignature: verifySignature,
	}
}

// ----------------- Initiate / Update -----------------

// InitiatePayment builds the signed hosted-page form for a cart. The cart id
// doubles as the transaction_uuid so retries and updates keep the same
// stable id across the whole lifecycle.
func (p *esewaProcessor) InitiatePayment(ctx context.Context, cartID string) (*InitiateResult, error) {
	return p.buildForm(ctx, cartID, "initiate")
}

// UpdatePayment recomputes the form after cart totals change. It never
// invalidates a previously issued transaction id.
func (p *esewaProcessor) UpdatePayment(ctx context.Context, cartID string) (*InitiateResult, error) {
	return p.buildForm(ctx, cartID, "update")
}

func (p *esewaProcessor) buildForm(ctx context.Context, cartID, operation string) (*InitiateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("cart_id", cartID),
		zap.String("operation", operation),
	)

	totals, err := p.carts.GetTotals(ctx, cartID)
	if err != nil {
		log.Error("Failed to fetch cart totals", zap.Error(err))
		return nil, NewProcessorError("Failed to "+operation+" payment", "", err)
	}

	formURL, fields := p.client.BuildPaymentForm(esewa.FormRequest{
		TransactionUUID: cartID,
		Amount:          totals.Amount,
		TaxAmount:       totals.TaxAmount,
		TotalAmount:     totals.TotalAmount,
		DeliveryCharge:  totals.DeliveryCharge,
	})

	session := &Session{
		TransactionID: cartID,
		TotalAmount:   fields["total_amount"],
		Status:        StatusPending,
	}
	session.MergeData(operation, map[string]interface{}{
		"transaction_uuid": cartID,
		"total_amount":     fields["total_amount"],
		"signature":        fields["signature"],
	})

	if err := p.sessions.UpsertSession(ctx, session); err != nil {
		log.Error("Failed to store payment session", zap.Error(err))
		return nil, NewProcessorError("Failed to "+operation+" payment", "", err)
	}

	log.Info("Payment form built",
		zap.String("transaction_uuid", cartID),
		zap.String("total_amount", session.TotalAmount),
	)

	return &InitiateResult{
		FormURL: formURL,
		Fields:  fields,
		Session: session,
	}, nil
}

// ----------------- Authorize / Capture -----------------

func (p *esewaProcessor) AuthorizePayment(ctx context.Context, session *Session) (*Session, error) {
	if err := p.requireComplete(ctx, session, "authorize"); err != nil {
		return nil, err
	}

	session.Status = StatusAuthorized
	p.persist(ctx, session)
	return session, nil
}

// CapturePayment repeats the same status check: eSewa has no separate
// capture step, the operation exists for workflow-contract compliance.
func (p *esewaProcessor) CapturePayment(ctx context.Context, session *Session) (map[string]interface{}, error) {
	if err := p.requireComplete(ctx, session, "capture"); err != nil {
		return nil, err
	}

	session.Status = StatusCaptured
	p.persist(ctx, session)
	return session.Data, nil
}

// requireComplete cross-checks the gateway and merges its fields into the
// session; any status other than COMPLETE is a state inconsistency.
func (p *esewaProcessor) requireComplete(ctx context.Context, session *Session, operation string) error {
	resp, err := p.client.CheckStatus(ctx, session.TransactionID, session.TotalAmount)
	if err != nil {
		return NewProcessorError("Failed to "+operation+" payment", "", err)
	}

	if resp.Status != esewa.StatusComplete {
		return NewProcessorError("Failed to "+operation+" payment", "",
			fmt.Errorf("%w: %s", ErrPaymentNotComplete, resp.Status))
	}

	session.MergeData(operation, resp.Fields)
	return nil
}

// ----------------- Status / Retrieve -----------------

// GetPaymentStatus polls the gateway and maps its vocabulary to the host
// lifecycle. Transport failures fail open to PENDING so the host polling
// loop keeps retrying instead of failing a checkout mid-flight.
func (p *esewaProcessor) GetPaymentStatus(ctx context.Context, session *Session) Status {
	resp, err := p.client.CheckStatus(ctx, session.TransactionID, session.TotalAmount)
	if err != nil {
		logger.FromCtx(ctx).Warn("Status check failed, treating as PENDING",
			zap.String("transaction_uuid", session.TransactionID),
			zap.Error(err),
		)
		return StatusPending
	}

	return MapGatewayStatus(resp.Status)
}

// RetrievePayment fetches and merges the latest gateway fields without ever
// mutating the host status.
func (p *esewaProcessor) RetrievePayment(ctx context.Context, session *Session) (map[string]interface{}, error) {
	resp, err := p.client.CheckStatus(ctx, session.TransactionID, session.TotalAmount)
	if err != nil {
		return nil, NewProcessorError("Failed to retrieve payment", "", err)
	}

	session.MergeData("retrieve", resp.Fields)
	p.persist(ctx, session)
	return session.Data, nil
}

// ----------------- Unsupported operations -----------------

// eSewa exposes no API for cancel, refund or delete; these must be handled
// manually through the merchant console. The errors below are deliberate
// terminal non-operations, not transient failures.

func (p *esewaProcessor) CancelPayment(ctx context.Context, session *Session) (map[string]interface{}, error) {
	return nil, NewProcessorError("Failed to cancel payment", "",
		errors.New("Contact Esewa to cancel payment"))
}

func (p *esewaProcessor) RefundPayment(ctx context.Context, session *Session, amount string) (map[string]interface{}, error) {
	return nil, NewProcessorError("Failed to refund payment", "",
		errors.New("Contact Esewa to refund payment"))
}

func (p *esewaProcessor) DeletePayment(ctx context.Context, session *Session) (map[string]interface{}, error) {
	return nil, NewProcessorError("Failed to delete payment", "",
		errors.New("Contact Esewa to delete payment"))
}

// ----------------- Session data -----------------

// UpdatePaymentData merges caller-supplied fields into the stored session
// bag without contacting the gateway.
func (p *esewaProcessor) UpdatePaymentData(ctx context.Context, transactionID string, data map[string]interface{}) (map[string]interface{}, error) {
	session, err := p.sessions.GetSession(ctx, transactionID)
	if err != nil {
		return nil, NewProcessorError("Failed to update payment data", "", err)
	}

	session.MergeData("update-data", data)
	if err := p.sessions.UpsertSession(ctx, session); err != nil {
		return nil, NewProcessorError("Failed to update payment data", "", err)
	}

	return session.Data, nil
}

// ----------------- Callback -----------------

// HandleCallback reconciles a browser-delivered payment callback. The
// payload's own status is only a hint: "complete" is returned exclusively
// when the independent status check against the gateway also reports
// COMPLETE.
func (p *esewaProcessor) HandleCallback(ctx context.Context, encodedData string) (*CallbackResult, error) {
	log := logger.FromCtx(ctx)

	payload, err := esewa.DecodePayload(encodedData)
	if err != nil {
		return nil, NewProcessorError("Invalid callback payload", "", err)
	}

	log = log.With(zap.String("transaction_uuid", payload.TransactionUUID))
	log.Debug("Callback received",
		zap.String("claimed_status", payload.Status),
		zap.String("total_amount", payload.TotalAmount),
	)

	data := map[string]interface{}{
		"transaction_uuid": payload.TransactionUUID,
		"transaction_code": payload.TransactionCode,
		"total_amount":     payload.TotalAmount,
		"gateway_status":   payload.Status,
	}

	if p.verifySignature {
		if !esewa.VerifyPayload(payload, p.client.ProductCode(), p.client.SecretKey()) {
			log.Warn("Callback signature mismatch", zap.Error(esewa.ErrSignatureMismatch))
			return &CallbackResult{Status: CallbackNotComplete, Data: data}, nil
		}
	}

	if payload.Status != esewa.StatusComplete {
		log.Info("Callback claims non-complete status", zap.String("status", payload.Status))
		return &CallbackResult{Status: CallbackNotComplete, Data: data}, nil
	}

	// The callback is attacker-controlled; the gateway's own status
	// endpoint is the trust anchor.
	resp, err := p.client.CheckStatus(ctx, payload.TransactionUUID, payload.TotalAmount)
	if err != nil {
		return nil, NewProcessorError("Failed to verify payment", "", err)
	}

	if resp.Status != esewa.StatusComplete {
		log.Warn("Cross-check disagrees with callback",
			zap.String("callback_status", payload.Status),
			zap.String("gateway_status", resp.Status),
		)
		data["gateway_status"] = resp.Status
		return &CallbackResult{Status: CallbackNotComplete, Data: data}, nil
	}

	session, err := p.sessions.GetSession(ctx, payload.TransactionUUID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Warn("Failed to load payment session", zap.Error(err))
		}
		session = &Session{
			TransactionID: payload.TransactionUUID,
			TotalAmount:   esewa.SanitizeAmount(payload.TotalAmount),
		}
	}

	for k, v := range resp.Fields {
		data[k] = v
	}
	session.MergeData("callback", data)
	session.Status = StatusAuthorized
	p.persist(ctx, session)

	log.Info("Payment verified complete",
		zap.String("transaction_code", payload.TransactionCode),
	)

	return &CallbackResult{Status: CallbackComplete, Data: session.Data}, nil
}

// persist stores the merged session best-effort: the session the caller
// holds is authoritative, the row exists for the ops status endpoint and
// debugging.
func (p *esewaProcessor) persist(ctx context.Context, session *Session) {
	if err := p.sessions.UpsertSession(ctx, session); err != nil {
		logger.FromCtx(ctx).Warn("Failed to persist payment session",
			zap.String("transaction_uuid", session.TransactionID),
			zap.Error(err),
		)
	}
}
