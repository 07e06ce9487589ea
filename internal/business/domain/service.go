package domain

import (
	"context"
	"errors"
)

type CreateBusinessRequest struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	City           string `json:"city"`
	Contact        string `json:"contact"`
	PlaceID        string `json:"place_id"`
	InitialCredits int64  `json:"initial_credits"`
	PricePerCredit int64  `json:"price_per_credit"`
}

type Service interface {
	Create(ctx context.Context, req CreateBusinessRequest) (Business, error)
	GetBySlug(ctx context.Context, slug string) (Business, error)
	List(ctx context.Context) ([]Business, error)
	Delete(ctx context.Context, slug string) error
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInactive       = errors.New("business_inactive")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidPlaceID = errors.New("invalid_place_id")
	ErrInvalidPrice   = errors.New("invalid_price")
	ErrSlugExists     = errors.New("slug_exists")
)
