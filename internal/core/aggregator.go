package core

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"NewsHunter/internal/models"
	"NewsHunter/internal/platform"
	"NewsHunter/pkg/logger"
)

const DefaultFetchTimeout = 10 * time.Second

// Aggregator 把一次浏览/搜索请求分发到多个平台，并按固定顺序合并结果
type Aggregator struct {
	platforms []platform.Platform
	timeout   time.Duration
}

// NewAggregator platforms 会按固定平台顺序重新排列；timeout 为单个平台调用的上限
func NewAggregator(timeout time.Duration, platforms ...platform.Platform) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ordered := make([]platform.Platform, 0, len(platforms))
	for _, p := range platforms {
		if p != nil {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name().Rank() < ordered[j].Name().Rank()
	})
	return &Aggregator{platforms: ordered, timeout: timeout}
}

// Providers 当前可用的平台，按固定顺序
func (a *Aggregator) Providers() []models.ProviderID {
	ids := make([]models.ProviderID, 0, len(a.platforms))
	for _, p := range a.platforms {
		ids = append(ids, p.Name())
	}
	return ids
}

// Browse 合并偏好后聚合
func (a *Aggregator) Browse(ctx context.Context, q models.Query, ref Refinement) []*models.Article {
	q.Kind = models.KindBrowse
	return a.collect(ctx, WithRefinement(q, ref))
}

// Search 关键词为空时不请求任何平台
func (a *Aggregator) Search(ctx context.Context, q models.Query) []*models.Article {
	q.Kind = models.KindSearch
	if q.Keyword == "" {
		logger.Debug("搜索缺少关键词，跳过所有平台")
		return []*models.Article{}
	}
	return a.collect(ctx, q)
}

func (a *Aggregator) collect(ctx context.Context, q models.Query) []*models.Article {
	selected := make([]platform.Platform, 0, len(a.platforms))
	for _, p := range a.platforms {
		if q.Selects(p.Name()) {
			selected = append(selected, p)
		}
	}

	logger.Debug("%s 请求: keyword=%q category=%q author=%q page=%d, 平台=%d 个",
		q.Kind, q.Keyword, q.Category, q.Author, q.Page, len(selected))

	// 每个平台写自己的槽位，合并时按槽位顺序拼接，完成先后不影响输出顺序
	blocks := make([][]*models.Article, len(selected))
	var g errgroup.Group
	for i, p := range selected {
		g.Go(func() error {
			blocks[i] = a.fetchOne(ctx, p, q)
			return nil
		})
	}
	// fetchOne 自行吞掉错误和 panic，Wait 只用于等待全部完成，不会返回错误
	_ = g.Wait()

	total := 0
	for _, b := range blocks {
		total += len(b)
	}
	out := make([]*models.Article, 0, total)
	for i, b := range blocks {
		logger.Debug("[%s] 返回 %d 条", selected[i].Name(), len(b))
		out = append(out, b...)
	}
	return out
}

func (a *Aggregator) fetchOne(ctx context.Context, p platform.Platform, q models.Query) (out []*models.Article) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[%s] 调用 panic: %v", p.Name(), r)
			out = nil
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return p.Fetch(callCtx, q)
}
