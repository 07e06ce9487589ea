package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/smallbiznis/revu/internal/config"
	paymentdomain "github.com/smallbiznis/revu/internal/payment/domain"
)

// Client talks to the Razorpay orders API and validates the two signature
// schemes the gateway uses: the checkout callback signature over
// "order_id|payment_id" and the webhook signature over the raw body.
type Client struct {
	keyID         string
	keySecret     string
	webhookSecret string
	baseURL       string
	httpc         *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		keyID:         cfg.GatewayKeyID,
		keySecret:     cfg.GatewayKeySecret,
		webhookSecret: cfg.GatewayWebhookSecret,
		baseURL:       cfg.GatewayBaseURL,
		httpc:         &http.Client{Timeout: 15 * time.Second},
	}
}

// Order is the gateway's order entity subset the service consumes.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder mints a gateway order for the given amount in minor units.
// Notes are opaque metadata echoed back on settlement.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency string, notes map[string]string) (Order, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: currency,
		Notes:    notes,
	})
	if err != nil {
		return Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("%w: %v", paymentdomain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Order{}, fmt.Errorf("%w: status %d", paymentdomain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("%w: %v", paymentdomain.ErrGatewayUnavailable, err)
	}
	if order.ID == "" {
		return Order{}, fmt.Errorf("%w: empty order id", paymentdomain.ErrGatewayUnavailable)
	}
	return order, nil
}

// VerifyPaymentSignature checks the checkout callback signature:
// HMAC-SHA256(key_secret, order_id + "|" + payment_id) hex-encoded.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	_, _ = mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

// VerifyWebhookSignature checks the webhook signature delivered in
// X-Razorpay-Signature: HMAC-SHA256(webhook_secret, raw_body) hex-encoded.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) bool {
	if len(payload) == 0 || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	_, _ = mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
