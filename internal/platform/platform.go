package platform

import (
	"context"
	"fmt"

	"NewsHunter/internal/models"
	"NewsHunter/pkg/logger"
)

// Platform 平台接口，三个新闻源都需实现
// Fetch 不返回错误：任何失败都在适配器内部降级为空结果
type Platform interface {
	Name() models.ProviderID

	Fetch(ctx context.Context, q models.Query) []*models.Article

	GetConfig() Config
}

type Config interface {
	Validate() error
}

// Absorb 执行一次平台内部查询，把 (结果, 错误) 收敛为结果序列
// 出错或 panic 时返回空切片并记录日志；同时丢弃缺少标题或链接的记录
func Absorb(ctx context.Context, id models.ProviderID, search func(ctx context.Context) ([]*models.Article, error)) (out []*models.Article) {
	log := logger.WithPrefix(string(id))
	defer func() {
		if r := recover(); r != nil {
			log.Error("适配器 panic: %v", r)
			out = []*models.Article{}
		}
	}()

	articles, err := search(ctx)
	if err != nil {
		log.Warn("请求失败，按空结果处理: %v", err)
		return []*models.Article{}
	}

	out = make([]*models.Article, 0, len(articles))
	for i, a := range articles {
		if !a.Valid() {
			log.Warn("丢弃第 %d 条记录: 缺少 title 或 url", i)
			continue
		}
		out = append(out, a)
	}
	return out
}

// StatusError 上游返回了非 2xx 状态码
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.Code)
}
