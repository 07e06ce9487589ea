package payment

import (
	"github.com/smallbiznis/revu/internal/payment/gateway/razorpay"
	"github.com/smallbiznis/revu/internal/payment/repository"
	paymentservice "github.com/smallbiznis/revu/internal/payment/service"
	"github.com/smallbiznis/revu/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(razorpay.NewClient),
	fx.Provide(paymentservice.NewService),
	fx.Provide(webhook.NewService),
)
