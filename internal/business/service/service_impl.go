package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	"github.com/smallbiznis/revu/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var placeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo businessdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo businessdomain.Repository
}

func NewService(p Params) businessdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("business.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req businessdomain.CreateBusinessRequest) (businessdomain.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return businessdomain.Business{}, businessdomain.ErrInvalidName
	}
	placeID := strings.TrimSpace(req.PlaceID)
	if placeID != "" && !placeIDPattern.MatchString(placeID) {
		return businessdomain.Business{}, businessdomain.ErrInvalidPlaceID
	}
	if req.PricePerCredit < 0 || req.InitialCredits < 0 {
		return businessdomain.Business{}, businessdomain.ErrInvalidPrice
	}

	business := businessdomain.Business{
		Slug:           slug.Make(name),
		Name:           name,
		Category:       strings.TrimSpace(req.Category),
		City:           strings.TrimSpace(req.City),
		Contact:        strings.TrimSpace(req.Contact),
		PlaceID:        placeID,
		CreditBalance:  req.InitialCredits,
		PricePerCredit: req.PricePerCredit,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &business); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return businessdomain.Business{}, businessdomain.ErrSlugExists
		}
		return businessdomain.Business{}, err
	}

	s.log.Info("business created",
		zap.String("slug", business.Slug),
		zap.Int64("initial_credits", business.CreditBalance),
	)
	return business, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (businessdomain.Business, error) {
	item, err := s.repo.FindBySlug(ctx, s.db, strings.TrimSpace(slug))
	if err != nil {
		return businessdomain.Business{}, err
	}
	if item == nil {
		return businessdomain.Business{}, businessdomain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]businessdomain.Business, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Delete(ctx context.Context, slug string) error {
	deleted, err := s.repo.Delete(ctx, s.db, strings.TrimSpace(slug))
	if err != nil {
		return err
	}
	if !deleted {
		return businessdomain.ErrNotFound
	}
	s.log.Info("business deleted", zap.String("slug", slug))
	return nil
}
