package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/revu/internal/business/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Create(business).Error
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Business, error) {
	var item domain.Business
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Business, error) {
	var items []domain.Business
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM businesses WHERE slug = ?`,
		slug,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) DebitCredit(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE businesses
		 SET credit_balance = credit_balance - 1
		 WHERE slug = ? AND active AND credit_balance > 0`,
		slug,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) AddCredits(ctx context.Context, db *gorm.DB, slug string, credits int64) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE businesses
		 SET credit_balance = credit_balance + ?
		 WHERE slug = ?`,
		credits,
		slug,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
