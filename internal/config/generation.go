package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// GenerationConfig tunes review generation without a redeploy.
type GenerationConfig struct {
	Prompt           string  `mapstructure:"prompt"`
	FallbackTemplate string  `mapstructure:"fallbackTemplate"`
	MaxTokens        int     `mapstructure:"maxTokens"`
	Temperature      float64 `mapstructure:"temperature"`
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Prompt:           "Write one short positive customer review for {name}, a {category} business in {city}. Service received: {service}.",
		FallbackTemplate: "Great experience at {name} in {city}. Friendly staff and excellent {category} service, highly recommended.",
		MaxTokens:        120,
		Temperature:      0.7,
	}
}

// GenerationConfigHolder serves the current generation settings and follows
// file changes at runtime.
type GenerationConfigHolder struct {
	current atomic.Value // holds GenerationConfig
}

func NewGenerationConfigHolder() (*GenerationConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("generation")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/revu")
	v.AddConfigPath(".")

	v.SetEnvPrefix("REVU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultGenerationConfig()
	v.SetDefault("generation.prompt", defaults.Prompt)
	v.SetDefault("generation.fallbackTemplate", defaults.FallbackTemplate)
	v.SetDefault("generation.maxTokens", defaults.MaxTokens)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	holder := &GenerationConfigHolder{}
	if err := holder.reload(v); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := holder.reload(v); err != nil {
			log.Printf("config: reload generation config: %v", err)
		}
	})
	v.WatchConfig()

	return holder, nil
}

func (h *GenerationConfigHolder) reload(v *viper.Viper) error {
	var cfg GenerationConfig
	if err := v.UnmarshalKey("generation", &cfg); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Prompt) == "" {
		cfg.Prompt = DefaultGenerationConfig().Prompt
	}
	if strings.TrimSpace(cfg.FallbackTemplate) == "" {
		cfg.FallbackTemplate = DefaultGenerationConfig().FallbackTemplate
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultGenerationConfig().MaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultGenerationConfig().Temperature
	}
	h.current.Store(cfg)
	return nil
}

// Current returns the active generation configuration.
func (h *GenerationConfigHolder) Current() GenerationConfig {
	if h == nil {
		return DefaultGenerationConfig()
	}
	if cfg, ok := h.current.Load().(GenerationConfig); ok {
		return cfg
	}
	return DefaultGenerationConfig()
}
