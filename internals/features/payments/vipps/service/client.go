// Vipps ePayment client: access-token fetch with a lazy, time-boxed cache,
// payment creation with an idempotency key, and status lookup.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"dansebakken_backend/internals/configs"
)

// A cached token is never used in its last minute of validity.
const tokenSafetyMargin = 60 * time.Second

type Config struct {
	BaseURL         string
	ClientID        string
	ClientSecret    string
	SubscriptionKey string
	MerchantSerial  string
	ReturnURL       string
}

func ConfigFromEnv(cfg configs.VippsConfig) Config {
	return Config{
		BaseURL:         cfg.BaseURL(),
		ClientID:        cfg.ClientID,
		ClientSecret:    cfg.ClientSecret,
		SubscriptionKey: cfg.SubscriptionKey,
		MerchantSerial:  cfg.MerchantSerial,
		ReturnURL:       cfg.ReturnURL,
	}
}

type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
		now:  time.Now,
	}
}

type CreatePaymentInput struct {
	AmountNOK   int // whole kroner, converted to øre on the wire
	Description string
	Reference   string // caller-unique, doubles as the idempotency key
	PhoneNumber string
}

type CreatePaymentResult struct {
	Reference   string
	RedirectURL string
}

// CreatePayment opens a payment session and returns the provider redirect
// URL. Retrying with the same reference is safe: the reference is sent as
// the Idempotency-Key header and deduplicated provider-side.
func (c *Client) CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentResult, error) {
	if in.AmountNOK <= 0 {
		return CreatePaymentResult{}, fmt.Errorf("vipps: invalid amount %d", in.AmountNOK)
	}
	if in.Reference == "" {
		return CreatePaymentResult{}, fmt.Errorf("vipps: missing reference")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return CreatePaymentResult{}, err
	}

	payload := map[string]interface{}{
		"amount": map[string]interface{}{
			"currency": "NOK",
			"value":    in.AmountNOK * 100,
		},
		"paymentMethod":      map[string]string{"type": "WALLET"},
		"reference":          in.Reference,
		"returnUrl":          c.cfg.ReturnURL,
		"userFlow":           "WEB_REDIRECT",
		"paymentDescription": in.Description,
	}
	if in.PhoneNumber != "" {
		payload["customer"] = map[string]string{"phoneNumber": in.PhoneNumber}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return CreatePaymentResult{}, fmt.Errorf("vipps: marshal payment: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/epayment/v1/payments", bytes.NewReader(body))
	if err != nil {
		return CreatePaymentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
	req.Header.Set("Merchant-Serial-Number", c.cfg.MerchantSerial)
	req.Header.Set("Idempotency-Key", in.Reference)

	resp, err := c.http.Do(req)
	if err != nil {
		return CreatePaymentResult{}, fmt.Errorf("vipps: create payment: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[VIPPS] create payment failed: status=%d body=%s", resp.StatusCode, respBody)
		return CreatePaymentResult{}, fmt.Errorf("vipps: create payment failed with status %d", resp.StatusCode)
	}

	var out struct {
		RedirectURL string `json:"redirectUrl"`
		Reference   string `json:"reference"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return CreatePaymentResult{}, fmt.Errorf("vipps: decode payment response: %w", err)
	}
	if out.Reference == "" {
		out.Reference = in.Reference
	}
	return CreatePaymentResult{Reference: out.Reference, RedirectURL: out.RedirectURL}, nil
}

// GetPaymentStatus returns the provider's status payload unmodified.
func (c *Client) GetPaymentStatus(ctx context.Context, reference string) (map[string]interface{}, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/epayment/v1/payments/"+reference, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
	req.Header.Set("Merchant-Serial-Number", c.cfg.MerchantSerial)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vipps: payment status: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[VIPPS] payment status failed: status=%d body=%s", resp.StatusCode, respBody)
		return nil, fmt.Errorf("vipps: payment status failed with status %d", resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("vipps: decode status response: %w", err)
	}
	return out, nil
}

// accessToken returns the cached token while it is comfortably inside its
// TTL and refreshes it otherwise. The mutex also covers the refresh itself,
// so concurrent requests never fetch twice.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/accesstoken/get", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("client_id", c.cfg.ClientID)
	req.Header.Set("client_secret", c.cfg.ClientSecret)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("vipps: fetch access token: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[VIPPS] token fetch failed: status=%d body=%s", resp.StatusCode, respBody)
		return "", fmt.Errorf("vipps: token fetch failed with status %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string      `json:"access_token"`
		ExpiresIn   flexSeconds `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("vipps: decode token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("vipps: token response without access_token")
	}

	ttl := time.Duration(out.ExpiresIn) * time.Second
	c.token = out.AccessToken
	c.tokenExpiry = c.now().Add(ttl - tokenSafetyMargin)
	return c.token, nil
}

// flexSeconds tolerates expires_in arriving as a bare number or, as the
// Vipps token endpoint actually sends it, a quoted string.
type flexSeconds int64

func (f *flexSeconds) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("expires_in: %w", err)
	}
	*f = flexSeconds(n)
	return nil
}
