package seed

import (
	"context"
	"errors"
	"time"

	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	"gorm.io/gorm"
)

const (
	demoSlug           = "demo-cafe"
	demoName           = "Demo Cafe"
	demoCategory       = "cafe"
	demoCity           = "Bengaluru"
	demoPlaceID        = "ChIJdemoplace0000000000000001"
	demoCredits        = 25
	demoPricePerCredit = 500
)

// EnsureDemoBusiness seeds a sample business with a starter credit
// balance so a fresh install can exercise generation and recharge flows.
func EnsureDemoBusiness(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var biz businessdomain.Business
		err := tx.WithContext(ctx).Where("slug = ?", demoSlug).First(&biz).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		biz = businessdomain.Business{
			Slug:           demoSlug,
			Name:           demoName,
			Category:       demoCategory,
			City:           demoCity,
			PlaceID:        demoPlaceID,
			CreditBalance:  demoCredits,
			PricePerCredit: demoPricePerCredit,
			Active:         true,
			CreatedAt:      time.Now().UTC(),
		}
		return tx.WithContext(ctx).Create(&biz).Error
	})
}
