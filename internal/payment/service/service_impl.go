package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	"github.com/smallbiznis/revu/internal/config"
	"github.com/smallbiznis/revu/internal/metrics"
	"github.com/smallbiznis/revu/internal/payment/domain"
	"github.com/smallbiznis/revu/internal/payment/gateway/razorpay"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Cfg          config.Config
	Gateway      *razorpay.Client
	BusinessRepo businessdomain.Repository
	Repo         domain.Repository
	Metrics      *metrics.Metrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	cfg          config.Config
	gateway      *razorpay.Client
	businessRepo businessdomain.Repository
	repo         domain.Repository
	metrics      *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("payment.service"),
		genID:        p.GenID,
		cfg:          p.Cfg,
		gateway:      p.Gateway,
		businessRepo: p.BusinessRepo,
		repo:         p.Repo,
		metrics:      p.Metrics,
	}
}

// CreateOrder quotes a top-up and mints a gateway order for it. No local
// state changes here; credits only move when a verified payment lands.
func (s *Service) CreateOrder(ctx context.Context, slug string, credits int64) (domain.OrderQuote, error) {
	if credits <= 0 {
		return domain.OrderQuote{}, domain.ErrInvalidCredits
	}

	business, err := s.businessRepo.FindBySlug(ctx, s.db, strings.TrimSpace(slug))
	if err != nil {
		return domain.OrderQuote{}, err
	}
	if business == nil {
		return domain.OrderQuote{}, businessdomain.ErrNotFound
	}
	if !business.Active {
		return domain.OrderQuote{}, businessdomain.ErrInactive
	}
	if business.PricePerCredit <= 0 {
		return domain.OrderQuote{}, domain.ErrInvalidAmount
	}

	amount := credits * business.PricePerCredit
	order, err := s.gateway.CreateOrder(ctx, amount, s.cfg.Currency, map[string]string{
		"slug":    business.Slug,
		"credits": strconv.FormatInt(credits, 10),
	})
	if err != nil {
		return domain.OrderQuote{}, err
	}

	s.log.Info("payment order minted",
		zap.String("slug", business.Slug),
		zap.String("order_id", order.ID),
		zap.Int64("credits", credits),
		zap.Int64("amount", amount),
	)
	return domain.OrderQuote{
		OrderID:  order.ID,
		Amount:   amount,
		Currency: s.cfg.Currency,
	}, nil
}

// VerifyAndApply handles the client-confirmed settlement path.
func (s *Service) VerifyAndApply(ctx context.Context, req domain.VerifyRequest) error {
	if !s.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		s.metrics.RecordPaymentEvent(domain.SourceCustomer, "rejected")
		return domain.ErrVerificationFailed
	}
	if req.Credits <= 0 {
		return domain.ErrInvalidCredits
	}

	business, err := s.businessRepo.FindBySlug(ctx, s.db, strings.TrimSpace(req.BusinessSlug))
	if err != nil {
		return err
	}
	if business == nil {
		return businessdomain.ErrNotFound
	}
	// The signature proves the payment, not the quantity. Recompute the
	// amount from the stored unit price and refuse mismatched claims.
	if req.Amount != req.Credits*business.PricePerCredit {
		return domain.ErrInvalidAmount
	}

	return s.Apply(ctx, domain.AppliedPayment{
		BusinessSlug:     business.Slug,
		Credits:          req.Credits,
		Amount:           req.Amount,
		UnitPrice:        business.PricePerCredit,
		GatewayPaymentID: req.PaymentID,
		GatewayOrderID:   req.OrderID,
		Source:           domain.SourceCustomer,
	})
}

// Apply reconciles one verified payment into the ledger exactly once.
// The insert, the balance increment and the applied marker share one
// transaction; the unique index on gateway_payment_id decides which of
// the racing trigger paths wins.
func (s *Service) Apply(ctx context.Context, payment domain.AppliedPayment) error {
	slug := strings.TrimSpace(payment.BusinessSlug)
	if slug == "" || strings.TrimSpace(payment.GatewayPaymentID) == "" {
		return domain.ErrInvalidPayment
	}
	if payment.Credits <= 0 {
		return domain.ErrInvalidCredits
	}
	if payment.Amount < 0 {
		return domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	record := domain.PaymentRecord{
		ID:               s.genID.Generate(),
		BusinessSlug:     slug,
		Credits:          payment.Credits,
		Amount:           payment.Amount,
		UnitPrice:        payment.UnitPrice,
		GatewayPaymentID: strings.TrimSpace(payment.GatewayPaymentID),
		GatewayOrderID:   strings.TrimSpace(payment.GatewayOrderID),
		Status:           domain.StatusCaptured,
		Source:           payment.Source,
		Metadata:         datatypes.JSON(payment.RawPayload),
		CreatedAt:        now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := s.repo.InsertRecord(ctx, tx, &record)
		if err != nil {
			return err
		}
		if !inserted {
			return domain.ErrAlreadyApplied
		}

		credited, err := s.businessRepo.AddCredits(ctx, tx, slug, payment.Credits)
		if err != nil {
			return err
		}
		if !credited {
			return businessdomain.ErrNotFound
		}

		return s.repo.MarkApplied(ctx, tx, record.ID, now)
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			s.metrics.RecordPaymentEvent(payment.Source, "duplicate")
			fields := []zap.Field{
				zap.String("slug", slug),
				zap.String("gateway_payment_id", record.GatewayPaymentID),
				zap.String("source", payment.Source),
			}
			if prior, lookupErr := s.repo.FindByGatewayPaymentID(ctx, s.db, record.GatewayPaymentID); lookupErr == nil && prior != nil {
				fields = append(fields, zap.String("applied_source", prior.Source))
			}
			s.log.Info("duplicate payment delivery ignored", fields...)
		}
		return err
	}

	s.metrics.RecordPaymentEvent(payment.Source, "applied")
	s.log.Info("payment applied",
		zap.String("slug", slug),
		zap.String("gateway_payment_id", record.GatewayPaymentID),
		zap.Int64("credits", payment.Credits),
		zap.Int64("amount", payment.Amount),
		zap.String("source", payment.Source),
	)
	return nil
}

// ListByBusiness returns the settled payments for one business, newest
// first.
func (s *Service) ListByBusiness(ctx context.Context, slug string) ([]domain.PaymentRecord, error) {
	business, err := s.businessRepo.FindBySlug(ctx, s.db, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, businessdomain.ErrNotFound
	}
	return s.repo.ListByBusiness(ctx, s.db, business.Slug)
}

// GrantCredits applies an administrative credit grant through the same
// ledger path, with a synthetic payment id for the uniqueness guard.
func (s *Service) GrantCredits(ctx context.Context, slug string, credits int64) error {
	if credits <= 0 {
		return domain.ErrInvalidCredits
	}

	business, err := s.businessRepo.FindBySlug(ctx, s.db, strings.TrimSpace(slug))
	if err != nil {
		return err
	}
	if business == nil {
		return businessdomain.ErrNotFound
	}

	return s.Apply(ctx, domain.AppliedPayment{
		BusinessSlug:     business.Slug,
		Credits:          credits,
		Amount:           credits * business.PricePerCredit,
		UnitPrice:        business.PricePerCredit,
		GatewayPaymentID: "admin_" + s.genID.Generate().String(),
		Source:           domain.SourceAdmin,
	})
}
