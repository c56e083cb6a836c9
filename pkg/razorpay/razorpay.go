// Package razorpay talks to a Razorpay-compatible orders API and verifies checkout signatures.
package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.razorpay.com"

// ErrNotConfigured is returned when key id or secret is missing.
var ErrNotConfigured = errors.New("razorpay is not configured")

// Config holds the API credentials.
type Config struct {
	KeyID     string
	KeySecret string
	BaseURL   string
	Timeout   time.Duration
}

// OrderRequest is the body of POST /v1/orders. Amount is in paise.
type OrderRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt"`
	Notes          map[string]string `json:"notes,omitempty"`
	PaymentCapture int               `json:"payment_capture"`
}

// GatewayError carries a non-2xx response from the gateway.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("razorpay order failed: %s", e.Body)
}

// Client creates orders and checks payment signatures.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	timeout   time.Duration
	logger    zerolog.Logger
}

// New constructs a client. It returns ErrNotConfigured when either credential is empty.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrNotConfigured
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		timeout:   timeout,
		logger:    logger.With().Str("component", "razorpay").Logger(),
	}, nil
}

// KeyID is the public key handed to the checkout widget.
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder posts the order and returns the gateway's JSON object unchanged.
func (c *Client) CreateOrder(req OrderRequest) (map[string]interface{}, error) {
	agent := fiber.Post(c.baseURL+"/v1/orders").
		BasicAuth(c.keyID, c.keySecret).
		JSON(req).
		Timeout(c.timeout)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("razorpay order request: %w", errors.Join(errs...))
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		c.logger.Warn().Int("status", status).Str("receipt", req.Receipt).Msg("razorpay rejected order")
		return nil, &GatewayError{Status: status, Body: string(body)}
	}

	var order map[string]interface{}
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode razorpay order: %w", err)
	}

	c.logger.Info().Str("receipt", req.Receipt).Int64("amount", req.Amount).Msg("razorpay order created")
	return order, nil
}

// Signature computes the hex HMAC-SHA256 of "<orderID>|<paymentID>" keyed by secret.
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares signature with the expected value in constant time.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	expected := Signature(c.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}
