package newsapi

import (
	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
	"NewsHunter/internal/platform"
)

func New(config *Config) (platform.Platform, error) {
	return NewAdapter(config)
}

func init() {
	core.MustRegister(core.Provider{
		ID: models.NewsAPI,
		New: func(cfg platform.Config) (platform.Platform, error) {
			c, _ := cfg.(*Config)
			if c == nil {
				c = DefaultConfig()
			}
			return New(c)
		},
		DefaultConfig: func() platform.Config { return DefaultConfig() },
	})
}
