package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentRecord is the append-only ledger row for one settled payment.
// gateway_payment_id carries a unique index; it is the idempotency key
// that keeps the verify and webhook paths from crediting twice.
type PaymentRecord struct {
	ID               snowflake.ID   `json:"id" gorm:"primaryKey"`
	BusinessSlug     string         `json:"business_slug" gorm:"not null;index"`
	Credits          int64          `json:"credits" gorm:"not null"`
	Amount           int64          `json:"amount" gorm:"not null"`
	UnitPrice        int64          `json:"unit_price" gorm:"not null"`
	GatewayPaymentID string         `json:"gateway_payment_id" gorm:"not null;uniqueIndex"`
	GatewayOrderID   string         `json:"gateway_order_id"`
	Status           string         `json:"status" gorm:"not null"`
	Source           string         `json:"source" gorm:"not null"`
	Metadata         datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null"`
	AppliedAt        *time.Time     `json:"applied_at"`
}

func (PaymentRecord) TableName() string { return "payments" }

const (
	StatusCaptured = "captured"

	SourceCustomer = "customer"
	SourceWebhook  = "webhook"
	SourceAdmin    = "admin"
)

// OrderQuote is returned by order minting; nothing is persisted for it.
type OrderQuote struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// AppliedPayment is a verified payment handed to the reconciler.
type AppliedPayment struct {
	BusinessSlug     string
	Credits          int64
	Amount           int64
	UnitPrice        int64
	GatewayPaymentID string
	GatewayOrderID   string
	Source           string
	RawPayload       []byte
}

// VerifyRequest is the client-confirmed settlement callback.
type VerifyRequest struct {
	BusinessSlug string `json:"slug"`
	OrderID      string `json:"order_id"`
	PaymentID    string `json:"payment_id"`
	Signature    string `json:"signature"`
	Credits      int64  `json:"credits"`
	Amount       int64  `json:"amount"`
}

var (
	ErrVerificationFailed = errors.New("verification_failed")
	ErrGatewayUnavailable = errors.New("gateway_unavailable")
	ErrAlreadyApplied     = errors.New("payment_already_applied")
	ErrInvalidCredits     = errors.New("invalid_credits")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidPayment     = errors.New("invalid_payment")
	ErrInvalidPayload     = errors.New("invalid_payload")
)
