package review

import (
	"github.com/smallbiznis/revu/internal/review/repository"
	reviewservice "github.com/smallbiznis/revu/internal/review/service"
	"go.uber.org/fx"
)

var Module = fx.Module("review.service",
	fx.Provide(repository.Provide),
	fx.Provide(reviewservice.NewService),
)
