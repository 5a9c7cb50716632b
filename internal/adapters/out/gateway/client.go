// Package gateway implements the payment provider client. All mutating
// financial calls carry the caller-supplied Idempotency-Key header, so a
// retried call has effect at most once on the provider side.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"orders/internal/core/ports"
)

// ErrInvalidSignature is returned when a webhook payload fails HMAC
// verification.
var ErrInvalidSignature = errors.New("webhook signature verification failed")

// Client talks to the payment provider's REST API.
type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	httpClient    *http.Client
}

// NewClient creates a gateway client. baseURL must not end with a slash.
func NewClient(baseURL, apiKey, webhookSecret string) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FindOrCreateCustomer returns the provider's customer id for the given
// email, creating the customer on first use.
func (c *Client) FindOrCreateCustomer(ctx context.Context, email, username string) (string, error) {
	reqBody := map[string]string{"email": email, "username": username}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/v1/customers", "", reqBody, &resp); err != nil {
		return "", fmt.Errorf("failed to resolve gateway customer: %w", err)
	}
	return resp.ID, nil
}

// CreateChargeIntent opens a charge intent for the given amount.
func (c *Client) CreateChargeIntent(ctx context.Context, req ports.ChargeIntentRequest) (ports.ChargeIntent, error) {
	reqBody := map[string]any{
		"customerId": req.CustomerID,
		"amount":     req.Amount,
		"currency":   req.Currency,
	}

	var resp struct {
		TransactionID string `json:"transactionId"`
		ClientSecret  string `json:"clientSecret"`
	}
	if err := c.post(ctx, "/v1/charge_intents", req.IdempotencyKey, reqBody, &resp); err != nil {
		return ports.ChargeIntent{}, fmt.Errorf("failed to create charge intent: %w", err)
	}
	return ports.ChargeIntent{TransactionID: resp.TransactionID, ClientSecret: resp.ClientSecret}, nil
}

// CancelChargeIntent voids an open, uncaptured charge intent.
func (c *Client) CancelChargeIntent(ctx context.Context, transactionID, idempotencyKey string) error {
	path := "/v1/charge_intents/" + transactionID + "/cancel"
	if err := c.post(ctx, path, idempotencyKey, struct{}{}, nil); err != nil {
		return fmt.Errorf("failed to cancel charge intent %s: %w", transactionID, err)
	}
	return nil
}

// CreateRefund refunds a captured charge and returns the provider's refund
// reference.
func (c *Client) CreateRefund(ctx context.Context, transactionID, idempotencyKey string) (string, error) {
	reqBody := map[string]string{"transactionId": transactionID}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/v1/refunds", idempotencyKey, reqBody, &resp); err != nil {
		return "", fmt.Errorf("failed to refund charge %s: %w", transactionID, err)
	}
	return resp.ID, nil
}

// CalculateTax computes the tax in cents for an amount charged to a buyer in
// the given country.
func (c *Client) CalculateTax(ctx context.Context, amount int64, currency, country string) (int64, error) {
	reqBody := map[string]any{
		"amount":   amount,
		"currency": currency,
		"country":  country,
	}

	var resp struct {
		Tax int64 `json:"tax"`
	}
	if err := c.post(ctx, "/v1/tax/calculate", "", reqBody, &resp); err != nil {
		return 0, fmt.Errorf("failed to calculate tax: %w", err)
	}
	return resp.Tax, nil
}

// ParseWebhook verifies the payload's HMAC-SHA256 signature against the
// webhook secret and decodes the event. A failed verification surfaces
// before any payload field is read.
func (c *Client) ParseWebhook(payload []byte, signature string) (ports.WebhookEvent, error) {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ports.WebhookEvent{}, ErrInvalidSignature
	}

	var event struct {
		Type          string `json:"type"`
		TransactionID string `json:"transactionId"`
		RefundID      string `json:"refundId"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		return ports.WebhookEvent{}, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	return ports.WebhookEvent{
		Type:          event.Type,
		TransactionID: event.TransactionID,
		RefundID:      event.RefundID,
	}, nil
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, reqBody, respBody any) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body)
	}

	if respBody == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(respBody)
}
