package nytimes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

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
		log:        logger.WithPrefix("NYTimes"),
	}
	if config.APIKey == "" {
		a.log.Warn("未配置 api_key，请求大概率会被拒绝")
	}
	return a, nil
}

func (a *Adapter) Name() models.ProviderID { return models.NewYorkTimes }

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
	if d := q.DateString("20060102"); d != "" {
		params.Set("begin_date", d)
		params.Set("end_date", d)
	}
	if fq := filterQuery(q); fq != "" {
		params.Set("fq", fq)
	}
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	params.Set(keyParam, a.config.APIKey)
	return params
}

// filterQuery 构造 fq
// 搜索: news_desk:<category>
// 浏览: section_name:<category> 与 byline:'<author>' 用 OR 连接
func filterQuery(q models.Query) string {
	if q.Kind == models.KindSearch {
		if q.Category == "" {
			return ""
		}
		return "news_desk:" + q.Category
	}

	var clauses []string
	if q.Category != "" {
		clauses = append(clauses, "section_name:"+q.Category)
	}
	if q.Author != "" {
		clauses = append(clauses, "byline:'"+q.Author+"'")
	}
	return strings.Join(clauses, " OR ")
}
