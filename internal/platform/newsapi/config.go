package newsapi

import (
	"fmt"
	"net/url"
	"time"

	"NewsHunter/internal/platform"
)

// Config newsapi.org 平台配置
type Config struct {
	SearchURL string        `mapstructure:"search_url" yaml:"search_url"` // 对应 NEWSAPIORG_SEARCH_URL
	APIKey    string        `mapstructure:"api_key" yaml:"api_key"`       // 对应 NEWSAPIORG_API_KEY
	Proxy     string        `mapstructure:"proxy" yaml:"proxy"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Retries   int           `mapstructure:"retries" yaml:"retries"`
}

func DefaultConfig() *Config {
	return &Config{
		SearchURL: "https://newsapi.org/v2/top-headlines",
		Timeout:   10 * time.Second,
		Retries:   2,
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if c.SearchURL == "" {
		return fmt.Errorf("search_url required")
	}
	if _, err := url.ParseRequestURI(c.SearchURL); err != nil {
		return fmt.Errorf("invalid search_url: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %v", c.Timeout)
	}
	if c.Retries < 0 || c.Retries > 5 {
		return fmt.Errorf("invalid retries: %d", c.Retries)
	}
	return nil
}

var _ platform.Config = (*Config)(nil)
