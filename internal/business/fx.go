package business

import (
	"github.com/smallbiznis/revu/internal/business/repository"
	businessservice "github.com/smallbiznis/revu/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(businessservice.NewService),
)
