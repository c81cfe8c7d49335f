package verify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aloeherbal-be/internal/esewa"
	"aloeherbal-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------- Stubs -----------------

type stubProcessor struct {
	callbackResult *payment.CallbackResult
	callbackErr    error
	status         payment.Status
}

func (s *stubProcessor) InitiatePayment(ctx context.Context, cartID string) (*payment.InitiateResult, error) {
	return nil, nil
}

func (s *stubProcessor) UpdatePayment(ctx context.Context, cartID string) (*payment.InitiateResult, error) {
	return nil, nil
}

func (s *stubProcessor) AuthorizePayment(ctx context.Context, session *payment.Session) (*payment.Session, error) {
	return session, nil
}

func (s *stubProcessor) CapturePayment(ctx context.Context, session *payment.Session) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubProcessor) CancelPayment(ctx context.Context, session *payment.Session) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubProcessor) RefundPayment(ctx context.Context, session *payment.Session, amount string) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubProcessor) DeletePayment(ctx context.Context, session *payment.Session) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubProcessor) RetrievePayment(ctx context.Context, session *payment.Session) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubProcessor) GetPaymentStatus(ctx context.Context, session *payment.Session) payment.Status {
	return s.status
}

func (s *stubProcessor) UpdatePaymentData(ctx context.Context, transactionID string, data map[string]interface{}) (map[string]interface{}, error) {
	return nil, nil
}

func (s *stubProcessor) HandleCallback(ctx context.Context, encodedData string) (*payment.CallbackResult, error) {
	if s.callbackErr != nil {
		return nil, s.callbackErr
	}
	return s.callbackResult, nil
}

type stubSessions struct {
	session *payment.Session
	err     error
}

func (s *stubSessions) UpsertSession(ctx context.Context, sess *payment.Session) error {
	return nil
}

func (s *stubSessions) GetSession(ctx context.Context, transactionID string) (*payment.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func postVerify(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/payments/verify", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h.VerifyHandler(w, req)
	return w
}

func encodedData(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(map[string]string{
		"transaction_uuid": "T1",
		"total_amount":     "100",
		"status":           "COMPLETE",
	})
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

// ----------------- /payments/verify -----------------

func TestVerifyHandler_Post(t *testing.T) {
	t.Run("Complete", func(t *testing.T) {
		h := NewHandler(&stubProcessor{callbackResult: &payment.CallbackResult{
			Status: payment.CallbackComplete,
			Data: map[string]interface{}{
				"transaction_uuid": "T1",
				"ref_id":           "0001AB",
			},
		}}, &stubSessions{})

		w := postVerify(t, h, map[string]string{"encodedData": encodedData(t)})

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "complete", body["status"])
		assert.Equal(t, "0001AB", body["ref_id"])
	})

	t.Run("NotComplete", func(t *testing.T) {
		h := NewHandler(&stubProcessor{callbackResult: &payment.CallbackResult{
			Status: payment.CallbackNotComplete,
			Data:   map[string]interface{}{"gateway_status": "PENDING"},
		}}, &stubSessions{})

		w := postVerify(t, h, map[string]string{"encodedData": encodedData(t)})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "not_complete", body["status"])
	})

	t.Run("MissingEncodedData", func(t *testing.T) {
		h := NewHandler(&stubProcessor{}, &stubSessions{})

		w := postVerify(t, h, map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid request body", body["error"])
	})

	t.Run("NonJSONBody", func(t *testing.T) {
		h := NewHandler(&stubProcessor{}, &stubSessions{})

		req := httptest.NewRequest(http.MethodPost, "/payments/verify", bytes.NewBufferString("not json"))
		w := httptest.NewRecorder()
		h.VerifyHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MalformedPayload", func(t *testing.T) {
		h := NewHandler(&stubProcessor{
			callbackErr: payment.NewProcessorError("Invalid callback payload", "", esewa.ErrMalformedPayload),
		}, &stubSessions{})

		w := postVerify(t, h, map[string]string{"encodedData": "!!!"})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Invalid request body", body["error"])
	})

	t.Run("ProcessorFailure", func(t *testing.T) {
		h := NewHandler(&stubProcessor{
			callbackErr: payment.NewProcessorError("Failed to verify payment", "", errors.New("connection refused")),
		}, &stubSessions{})

		w := postVerify(t, h, map[string]string{"encodedData": encodedData(t)})

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "Failed to verify payment")
	})
}

func TestVerifyHandler_Get(t *testing.T) {
	h := NewHandler(&stubProcessor{}, &stubSessions{})

	req := httptest.NewRequest(http.MethodGet, "/payments/verify", nil)
	w := httptest.NewRecorder()
	h.VerifyHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Please use POST to get verification response.", body["message"])
}

func TestVerifyHandler_MethodNotAllowed(t *testing.T) {
	h := NewHandler(&stubProcessor{}, &stubSessions{})

	req := httptest.NewRequest(http.MethodDelete, "/payments/verify", nil)
	w := httptest.NewRecorder()
	h.VerifyHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

// ----------------- /payments/status -----------------

func TestStatusHandler(t *testing.T) {
	session := &payment.Session{
		TransactionID: "T1",
		TotalAmount:   "100",
		Status:        payment.StatusPending,
		Data:          map[string]interface{}{"last_operation": "initiate"},
	}

	t.Run("Success", func(t *testing.T) {
		h := NewHandler(
			&stubProcessor{status: payment.StatusAuthorized},
			&stubSessions{session: session},
		)

		req := httptest.NewRequest(http.MethodGet, "/payments/status?transaction_uuid=T1", nil)
		w := httptest.NewRecorder()
		h.StatusHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "T1", body["transaction_uuid"])
		assert.Equal(t, "AUTHORIZED", body["status"])
	})

	t.Run("MissingParam", func(t *testing.T) {
		h := NewHandler(&stubProcessor{}, &stubSessions{})

		req := httptest.NewRequest(http.MethodGet, "/payments/status", nil)
		w := httptest.NewRecorder()
		h.StatusHandler(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		h := NewHandler(&stubProcessor{}, &stubSessions{err: payment.ErrSessionNotFound})

		req := httptest.NewRequest(http.MethodGet, "/payments/status?transaction_uuid=missing", nil)
		w := httptest.NewRecorder()
		h.StatusHandler(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PostRejected", func(t *testing.T) {
		h := NewHandler(&stubProcessor{}, &stubSessions{})

		req := httptest.NewRequest(http.MethodPost, "/payments/status?transaction_uuid=T1", nil)
		w := httptest.NewRecorder()
		h.StatusHandler(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
