package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	businessrepo "github.com/smallbiznis/revu/internal/business/repository"
	businessservice "github.com/smallbiznis/revu/internal/business/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newBusinessService(t *testing.T) businessdomain.Service {
	t.Helper()

	db := setupTestDB(t)
	return businessservice.NewService(businessservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: businessrepo.Provide(),
	})
}

func TestCreateBusiness(t *testing.T) {
	ctx := context.Background()
	svc := newBusinessService(t)

	biz, err := svc.Create(ctx, businessdomain.CreateBusinessRequest{
		Name:           "Chai Point HSR",
		Category:       "cafe",
		City:           "Bengaluru",
		PlaceID:        "ChIJtest_place-01",
		InitialCredits: 25,
		PricePerCredit: 500,
	})
	require.NoError(t, err)
	require.Equal(t, "chai-point-hsr", biz.Slug)
	require.True(t, biz.Active)
	require.EqualValues(t, 25, biz.CreditBalance)
	require.EqualValues(t, 500, biz.PricePerCredit)

	got, err := svc.GetBySlug(ctx, "chai-point-hsr")
	require.NoError(t, err)
	require.Equal(t, "Chai Point HSR", got.Name)
}

func TestCreateBusinessValidation(t *testing.T) {
	ctx := context.Background()
	svc := newBusinessService(t)

	_, err := svc.Create(ctx, businessdomain.CreateBusinessRequest{Name: "   "})
	require.ErrorIs(t, err, businessdomain.ErrInvalidName)

	_, err = svc.Create(ctx, businessdomain.CreateBusinessRequest{
		Name:    "Chai Point",
		PlaceID: "has spaces and ünicode",
	})
	require.ErrorIs(t, err, businessdomain.ErrInvalidPlaceID)

	_, err = svc.Create(ctx, businessdomain.CreateBusinessRequest{
		Name:           "Chai Point",
		PricePerCredit: -1,
	})
	require.ErrorIs(t, err, businessdomain.ErrInvalidPrice)
}

func TestCreateBusinessDuplicateSlug(t *testing.T) {
	ctx := context.Background()
	svc := newBusinessService(t)

	req := businessdomain.CreateBusinessRequest{Name: "Chai Point", PricePerCredit: 500}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, businessdomain.ErrSlugExists)
}

func TestDeleteBusiness(t *testing.T) {
	ctx := context.Background()
	svc := newBusinessService(t)

	_, err := svc.Create(ctx, businessdomain.CreateBusinessRequest{Name: "Chai Point"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "chai-point"))

	_, err = svc.GetBySlug(ctx, "chai-point")
	require.ErrorIs(t, err, businessdomain.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "chai-point"), businessdomain.ErrNotFound)
}

func TestListBusinesses(t *testing.T) {
	ctx := context.Background()
	svc := newBusinessService(t)

	for _, name := range []string{"Chai Point", "Juice Junction"} {
		_, err := svc.Create(ctx, businessdomain.CreateBusinessRequest{Name: name})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_business_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE businesses (
		slug TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		city TEXT,
		contact TEXT,
		place_id TEXT,
		credit_balance BIGINT NOT NULL DEFAULT 0,
		price_per_credit BIGINT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL
	)`).Error
	require.NoError(t, err)

	return db
}
