package guardian

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"NewsHunter/internal/core"
	"NewsHunter/internal/models"
	"NewsHunter/internal/platform"
	"NewsHunter/pkg/logger"
)

const keyParam = "api-key"

type Adapter struct {
	config     *Config
	httpClient *http.Client
	log        *logger.Logger
}

func NewAdapter(config *Config) (*Adapter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &Adapter{
		config:     config,
		httpClient: core.NewHTTPClient(config.Timeout, config.Proxy),
		log:        logger.WithPrefix("Guardian"),
	}
	if config.APIKey == "" {
		a.log.Warn("未配置 api_key，请求大概率会被拒绝")
	}
	return a, nil
}

func (a *Adapter) Name() models.ProviderID { return models.Guardian }

func (a *Adapter) GetConfig() platform.Config { return a.config }

func (a *Adapter) Fetch(ctx context.Context, q models.Query) []*models.Article {
	return platform.Absorb(ctx, a.Name(), func(ctx context.Context) ([]*models.Article, error) {
		return a.search(ctx, q)
	})
}

func (a *Adapter) search(ctx context.Context, q models.Query) ([]*models.Article, error) {
	params := a.buildParams(q)
	a.log.Debug("请求: %s", core.RedactURL(a.config.SearchURL, params, keyParam))

	body, err := core.GetBody(ctx, a.httpClient, a.config.SearchURL, params, a.config.Retries)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	articles, err := parseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	a.log.Debug("返回 %d 条", len(articles))
	return articles, nil
}

func (a *Adapter) buildParams(q models.Query) url.Values {
	params := url.Values{}
	if q.Keyword != "" {
		params.Set("q", q.Keyword)
	}
	if d := q.DateString("2006-01-02"); d != "" {
		params.Set("from-date", d)
		params.Set("to-date", d)
	}
	if q.Category != "" {
		params.Set("section", q.Category)
	}
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	params.Set(keyParam, a.config.APIKey)
	params.Set("show-tags", "contributor")
	params.Set("show-element", "image")
	return params
}
