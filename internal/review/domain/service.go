package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertLog(ctx context.Context, db *gorm.DB, log *ReviewLog) error
	CountByBusiness(ctx context.Context, db *gorm.DB, slug string) (int64, error)
}

type Service interface {
	// Generate runs the credit gate and, when a credit was taken, produces
	// review text. The debit happens before the generator call so a slow or
	// failing generator never yields an unmetered generation.
	Generate(ctx context.Context, slug string, service string) (GenerateResult, error)
	// CountByBusiness reports how many credits a business has consumed.
	CountByBusiness(ctx context.Context, slug string) (int64, error)
}
