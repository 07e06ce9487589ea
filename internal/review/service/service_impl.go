package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	"github.com/smallbiznis/revu/internal/config"
	"github.com/smallbiznis/revu/internal/metrics"
	"github.com/smallbiznis/revu/internal/providers/generator"
	reviewdomain "github.com/smallbiznis/revu/internal/review/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const exhaustedNotice = "This business has used all its review credits. Ask the owner to recharge."

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Cfg          config.Config
	GenCfg       *config.GenerationConfigHolder
	BusinessRepo businessdomain.Repository
	Repo         reviewdomain.Repository
	Generator    generator.Provider
	Metrics      *metrics.Metrics `optional:"true"`
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	cfg          config.Config
	genCfg       *config.GenerationConfigHolder
	businessRepo businessdomain.Repository
	repo         reviewdomain.Repository
	generator    generator.Provider
	metrics      *metrics.Metrics
}

func NewService(p Params) reviewdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("review.service"),
		genID:        p.GenID,
		cfg:          p.Cfg,
		genCfg:       p.GenCfg,
		businessRepo: p.BusinessRepo,
		repo:         p.Repo,
		generator:    p.Generator,
		metrics:      p.Metrics,
	}
}

func (s *Service) Generate(ctx context.Context, slug string, service string) (reviewdomain.GenerateResult, error) {
	slug = strings.TrimSpace(slug)

	business, err := s.businessRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		return reviewdomain.GenerateResult{}, err
	}
	if business == nil {
		return reviewdomain.GenerateResult{}, businessdomain.ErrNotFound
	}
	if !business.Active {
		return reviewdomain.GenerateResult{}, businessdomain.ErrInactive
	}

	// The snapshot above is advisory only. The debit below re-checks
	// active and balance inside the UPDATE, so two requests racing for the
	// last credit cannot both pass.
	debited, err := s.businessRepo.DebitCredit(ctx, s.db, slug)
	if err != nil {
		return reviewdomain.GenerateResult{}, err
	}
	if !debited {
		s.metrics.RecordGeneration(metrics.OutcomeExhausted)
		return reviewdomain.GenerateResult{
			Review:       exhaustedNotice,
			Exhausted:    true,
			RechargeLink: s.cfg.RechargeBaseURL + "/r/" + slug,
		}, nil
	}

	// Best effort: a failed audit write must not undo the debit or block
	// the response.
	logEntry := reviewdomain.ReviewLog{
		ID:           s.genID.Generate(),
		BusinessSlug: slug,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.InsertLog(ctx, s.db, &logEntry); err != nil {
		s.log.Warn("review log write failed", zap.String("slug", slug), zap.Error(err))
	}

	req := generator.Request{
		Name:     business.Name,
		Category: business.Category,
		City:     business.City,
		Service:  strings.TrimSpace(service),
	}

	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.log.Warn("generator failed, using fallback text", zap.String("slug", slug), zap.Error(err))
		text = generator.FallbackText(s.genCfg.Current().FallbackTemplate, req)
		s.metrics.RecordGeneration(metrics.OutcomeFallback)
	} else {
		s.metrics.RecordGeneration(metrics.OutcomeGenerated)
	}

	return reviewdomain.GenerateResult{
		Review: generator.Sanitize(text),
	}, nil
}

func (s *Service) CountByBusiness(ctx context.Context, slug string) (int64, error) {
	return s.repo.CountByBusiness(ctx, s.db, strings.TrimSpace(slug))
}
