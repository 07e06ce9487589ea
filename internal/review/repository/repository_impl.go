package repository

import (
	"context"

	"github.com/smallbiznis/revu/internal/review/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertLog(ctx context.Context, db *gorm.DB, log *domain.ReviewLog) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO review_logs (id, business_slug, created_at)
		 VALUES (?, ?, ?)`,
		log.ID,
		log.BusinessSlug,
		log.CreatedAt,
	).Error
}

func (r *repo) CountByBusiness(ctx context.Context, db *gorm.DB, slug string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM review_logs WHERE business_slug = ?`,
		slug,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
