package esewa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aloeherbal-be/internal/logger"

	"go.uber.org/zap"
)

const (
	statusPath = "/api/epay/transaction/status"

	maxStatusRetries = 2
	retryBackoff     = 500 * time.Millisecond
)

// Gateway status vocabulary.
const (
	StatusComplete  = "COMPLETE"
	StatusPending   = "PENDING"
	StatusCanceled  = "CANCELED"
	StatusAmbiguous = "AMBIGUOUS"
	StatusNotFound  = "NOT_FOUND"
)

// StatusResponse is the decoded body of a status-check call. Status is the
// gateway vocabulary value; Fields keeps the full decoded body so callers
// can merge it into their session data.
type StatusResponse struct {
	Status string
	Fields map[string]interface{}
}

// Client performs the outbound calls to eSewa and builds the signed
// hosted-page form. Safe for concurrent use; it holds no per-transaction
// state.
type Client struct {
	baseURL     string
	formURL     string
	productCode string
	secretKey   string
	successURL  string
	failureURL  string
	httpClient  *http.Client
}

func NewClient(baseURL, formURL, productCode, secretKey, successURL, failureURL string) *Client {
	if secretKey == "" {
		logger.L().Warn("eSewa secret key is empty")
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		formURL:     formURL,
		productCode: productCode,
		secretKey:   secretKey,
		successURL:  successURL,
		failureURL:  failureURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) ProductCode() string { return c.productCode }
func (c *Client) SecretKey() string   { return c.secretKey }

// SanitizeAmount strips thousands-separator commas so the amount used in the
// signature and the one sent on the wire are byte-identical.
func SanitizeAmount(amount string) string {
	return strings.TrimSpace(strings.ReplaceAll(amount, ",", ""))
}

// CheckStatus asks eSewa for the authoritative state of a transaction.
// Idempotent; safe to call repeatedly for the same transaction id. Transport
// failures are retried a bounded number of times, then surface as a
// *CommunicationError.
func (c *Client) CheckStatus(ctx context.Context, transactionUUID, totalAmount string) (*StatusResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("transaction_uuid", transactionUUID),
	)

	u, err := url.Parse(c.baseURL + statusPath)
	if err != nil {
		return nil, &CommunicationError{Err: err}
	}
	q := u.Query()
	q.Set("product_code", c.productCode)
	q.Set("total_amount", SanitizeAmount(totalAmount))
	q.Set("transaction_uuid", transactionUUID)
	u.RawQuery = q.Encode()

	log.Debug("eSewa status check", zap.String("url", u.String()))

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, &CommunicationError{Err: err}
		}

		resp, err = c.httpClient.Do(req)
		if err == nil {
			break
		}
		if attempt >= maxStatusRetries || ctx.Err() != nil {
			log.Error("eSewa status check failed", zap.Error(err), zap.Int("attempts", attempt+1))
			return nil, &CommunicationError{Err: err}
		}

		log.Warn("eSewa status check retrying", zap.Error(err), zap.Int("attempt", attempt+1))
		select {
		case <-ctx.Done():
			return nil, &CommunicationError{Err: ctx.Err()}
		case <-time.After(retryBackoff << attempt):
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CommunicationError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("eSewa returned non-success status",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", body),
		)
		return nil, &CommunicationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		log.Error("Failed decoding eSewa response", zap.Error(err), zap.ByteString("response", body))
		return nil, &CommunicationError{Err: err}
	}

	status, _ := fields["status"].(string)
	status = strings.ToUpper(strings.TrimSpace(status))

	log.Debug("eSewa status check response", zap.String("status", status))

	return &StatusResponse{
		Status: status,
		Fields: fields,
	}, nil
}
