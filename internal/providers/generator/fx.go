package generator

import (
	"github.com/smallbiznis/revu/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.generator",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, holder *config.GenerationConfigHolder) Provider {
	return NewOpenAI(cfg, holder)
}
