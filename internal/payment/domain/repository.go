package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// InsertRecord inserts the payment keyed by gateway payment id and
	// reports whether the row was actually written. A conflict means the
	// payment was already reported through the other trigger path.
	InsertRecord(ctx context.Context, db *gorm.DB, record *PaymentRecord) (bool, error)
	FindByGatewayPaymentID(ctx context.Context, db *gorm.DB, gatewayPaymentID string) (*PaymentRecord, error)
	MarkApplied(ctx context.Context, db *gorm.DB, id snowflake.ID, appliedAt time.Time) error
	ListByBusiness(ctx context.Context, db *gorm.DB, slug string) ([]PaymentRecord, error)
}

type Service interface {
	CreateOrder(ctx context.Context, slug string, credits int64) (OrderQuote, error)
	VerifyAndApply(ctx context.Context, req VerifyRequest) error
	Apply(ctx context.Context, payment AppliedPayment) error
	GrantCredits(ctx context.Context, slug string, credits int64) error
	ListByBusiness(ctx context.Context, slug string) ([]PaymentRecord, error)
}
