package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/revu/internal/config"
	"github.com/smallbiznis/revu/internal/logger"
	"github.com/smallbiznis/revu/internal/payment/webhook"
	"github.com/smallbiznis/revu/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"

	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	paymentdomain "github.com/smallbiznis/revu/internal/payment/domain"
	reviewdomain "github.com/smallbiznis/revu/internal/review/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	businessSvc businessdomain.Service
	reviewSvc   reviewdomain.Service
	paymentSvc  paymentdomain.Service
	webhookSvc  *webhook.Service
	limiter     *ratelimit.TokenBucket
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	BusinessSvc businessdomain.Service
	ReviewSvc   reviewdomain.Service
	PaymentSvc  paymentdomain.Service
	WebhookSvc  *webhook.Service
	Limiter     *ratelimit.TokenBucket `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		businessSvc: p.BusinessSvc,
		reviewSvc:   p.ReviewSvc,
		paymentSvc:  p.PaymentSvc,
		webhookSvc:  p.WebhookSvc,
		limiter:     p.Limiter,
	}

	svc.registerAPIRoutes()
	svc.registerAdminRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.POST("/businesses/:slug/generate", s.GenerateRateLimit(), s.GenerateReview)
	api.POST("/businesses/:slug/orders", s.CreateOrder)
	api.POST("/payments/verify", s.VerifyPayment)

	s.engine.POST("/webhooks/razorpay", s.HandleRazorpayWebhook)
	s.engine.GET("/r/:slug", s.RechargeInfo)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AdminRequired())

	admin.GET("/businesses", s.ListBusinesses)
	admin.POST("/businesses", s.CreateBusiness)
	admin.GET("/businesses/:slug", s.GetBusiness)
	admin.DELETE("/businesses/:slug", s.DeleteBusiness)
	admin.POST("/businesses/:slug/credits", s.GrantCredits)
	admin.GET("/businesses/:slug/payments", s.ListBusinessPayments)
}
