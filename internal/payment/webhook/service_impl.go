package webhook

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/smallbiznis/revu/internal/metrics"
	paymentdomain "github.com/smallbiznis/revu/internal/payment/domain"
	"github.com/smallbiznis/revu/internal/payment/gateway/razorpay"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Gateway    *razorpay.Client
	PaymentSvc paymentdomain.Service
	Metrics    *metrics.Metrics `optional:"true"`
}

// Service ingests gateway webhooks: verify the raw-body signature, parse
// the event envelope, and route captured payments into the reconciler.
type Service struct {
	log        *zap.Logger
	gateway    *razorpay.Client
	paymentSvc paymentdomain.Service
	metrics    *metrics.Metrics
}

func NewService(p Params) *Service {
	return &Service{
		log:        p.Log.Named("payment.webhook"),
		gateway:    p.Gateway,
		paymentSvc: p.PaymentSvc,
		metrics:    p.Metrics,
	}
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	OrderID  string            `json:"order_id"`
	Notes    map[string]string `json:"notes"`
}

const eventPaymentCaptured = "payment.captured"

// Ingest processes one webhook delivery. A signature mismatch takes no
// action at all; unhandled event types are acknowledged and dropped.
func (s *Service) Ingest(ctx context.Context, payload []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(payload, strings.TrimSpace(signature)) {
		s.metrics.RecordPaymentEvent(paymentdomain.SourceWebhook, "rejected")
		s.log.Warn("webhook signature mismatch")
		return paymentdomain.ErrVerificationFailed
	}
	if !json.Valid(payload) {
		return paymentdomain.ErrInvalidPayload
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return paymentdomain.ErrInvalidPayload
	}

	if event.Event != eventPaymentCaptured {
		s.log.Debug("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	entity := event.Payload.Payment.Entity
	if strings.TrimSpace(entity.ID) == "" {
		return paymentdomain.ErrInvalidPayload
	}

	slug := strings.TrimSpace(entity.Notes["slug"])
	credits, err := strconv.ParseInt(strings.TrimSpace(entity.Notes["credits"]), 10, 64)
	if err != nil || credits <= 0 || slug == "" {
		s.log.Warn("webhook payment without usable metadata",
			zap.String("gateway_payment_id", entity.ID),
		)
		return paymentdomain.ErrInvalidPayload
	}

	unitPrice := int64(0)
	if credits > 0 {
		unitPrice = entity.Amount / credits
	}

	return s.paymentSvc.Apply(ctx, paymentdomain.AppliedPayment{
		BusinessSlug:     slug,
		Credits:          credits,
		Amount:           entity.Amount,
		UnitPrice:        unitPrice,
		GatewayPaymentID: entity.ID,
		GatewayOrderID:   entity.OrderID,
		Source:           paymentdomain.SourceWebhook,
		RawPayload:       payload,
	})
}
