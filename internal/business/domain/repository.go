package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, business *Business) error
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Business, error)
	List(ctx context.Context, db *gorm.DB) ([]Business, error)
	Delete(ctx context.Context, db *gorm.DB, slug string) (bool, error)

	// DebitCredit atomically takes one credit from an active business with a
	// positive balance. The condition lives in the UPDATE itself so two
	// concurrent requests can never both spend the last credit.
	DebitCredit(ctx context.Context, db *gorm.DB, slug string) (bool, error)

	// AddCredits atomically increments the balance. Returns false when the
	// business does not exist.
	AddCredits(ctx context.Context, db *gorm.DB, slug string, credits int64) (bool, error)
}
