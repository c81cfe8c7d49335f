// Package verify exposes the HTTP surface of the payment core: the endpoint
// eSewa redirects the payer's browser back to, and an internal status
// endpoint for the order workflow.
package verify

import (
	"encoding/json"
	"errors"
	"net/http"

	"aloeherbal-be/internal/esewa"
	"aloeherbal-be/internal/logger"
	"aloeherbal-be/internal/payment"
	"aloeherbal-be/internal/utils"

	"go.uber.org/zap"
)

type verifyRequest struct {
	EncodedData string `json:"encodedData"`
}

type Handler struct {
	Processor payment.Provider
	Sessions  payment.Repository
}

func NewHandler(processor payment.Provider, sessions payment.Repository) *Handler {
	return &Handler{
		Processor: processor,
		Sessions:  sessions,
	}
}

// VerifyHandler is the route handler for /payments/verify. Every code path
// answers with a JSON body; nothing escapes as an unhandled panic to the
// payer's browser.
func (h *Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		utils.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Please use POST to get verification response.",
		})
	case http.MethodPost:
		h.handleVerifyPost(w, r)
	default:
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleVerifyPost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EncodedData == "" {
		utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	res, err := h.Processor.HandleCallback(r.Context(), req.EncodedData)
	if err != nil {
		if errors.Is(err, esewa.ErrMalformedPayload) {
			utils.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		log.Error("Callback handling failed", zap.Error(err))

		var pe *payment.ProcessorError
		if errors.As(err, &pe) {
			utils.WriteJSONError(w, pe.Error(), http.StatusInternalServerError)
			return
		}
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	body := make(map[string]interface{}, len(res.Data)+1)
	for k, v := range res.Data {
		body[k] = v
	}
	body["status"] = res.Status

	if res.Status == payment.CallbackComplete {
		utils.WriteJSON(w, http.StatusOK, body)
		return
	}
	utils.WriteJSON(w, http.StatusBadRequest, body)
}

// StatusHandler serves GET /payments/status?transaction_uuid=... for the
// order workflow and operators. It reads the stored session and re-polls the
// gateway; it never mutates the stored status.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	transactionID := r.URL.Query().Get("transaction_uuid")
	if transactionID == "" {
		utils.WriteJSONError(w, "transaction_uuid is required", http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.GetSession(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			utils.WriteJSONError(w, "Payment session not found", http.StatusNotFound)
			return
		}
		logger.FromCtx(r.Context()).Error("Failed to load payment session", zap.Error(err))
		utils.WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := h.Processor.GetPaymentStatus(r.Context(), session)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transaction_uuid": session.TransactionID,
		"total_amount":     session.TotalAmount,
		"status":           status,
		"data":             session.Data,
	})
}
