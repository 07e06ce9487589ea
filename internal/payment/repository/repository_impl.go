package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/revu/internal/payment/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertRecord(ctx context.Context, db *gorm.DB, record *domain.PaymentRecord) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`INSERT INTO payments (
			id, business_slug, credits, amount, unit_price,
			gateway_payment_id, gateway_order_id, status, source,
			metadata, created_at, applied_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (gateway_payment_id) DO NOTHING`,
		record.ID,
		record.BusinessSlug,
		record.Credits,
		record.Amount,
		record.UnitPrice,
		record.GatewayPaymentID,
		record.GatewayOrderID,
		record.Status,
		record.Source,
		record.Metadata,
		record.CreatedAt,
		record.AppliedAt,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) FindByGatewayPaymentID(ctx context.Context, db *gorm.DB, gatewayPaymentID string) (*domain.PaymentRecord, error) {
	var item domain.PaymentRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, business_slug, credits, amount, unit_price,
			gateway_payment_id, gateway_order_id, status, source,
			metadata, created_at, applied_at
		 FROM payments
		 WHERE gateway_payment_id = ?
		 LIMIT 1`,
		gatewayPaymentID,
	).Scan(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

func (r *repo) MarkApplied(ctx context.Context, db *gorm.DB, id snowflake.ID, appliedAt time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE payments
		 SET applied_at = ?
		 WHERE id = ?`,
		appliedAt,
		id,
	).Error
}

func (r *repo) ListByBusiness(ctx context.Context, db *gorm.DB, slug string) ([]domain.PaymentRecord, error) {
	var items []domain.PaymentRecord
	err := db.WithContext(ctx).Raw(
		`SELECT id, business_slug, credits, amount, unit_price,
			gateway_payment_id, gateway_order_id, status, source,
			metadata, created_at, applied_at
		 FROM payments
		 WHERE business_slug = ?
		 ORDER BY created_at DESC`,
		slug,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
