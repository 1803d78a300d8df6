package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	storage "NewsHunter/db"
	dbsqlite "NewsHunter/db/sqlite"

	exporter "NewsHunter/internal/core/export"
	csv "NewsHunter/internal/core/export/csv"
	json "NewsHunter/internal/core/export/json"
	"NewsHunter/internal/models"
	"NewsHunter/internal/platform"
	"NewsHunter/pkg/logger"
)

// App 把平台、聚合器和账户存储组装在一起，供 HTTP 服务和命令行共用
type App struct {
	db         storage.AccountStorage
	aggregator *Aggregator
}

// NewApp 按配置创建所有已注册平台；pCfg 中缺失的平台使用默认配置
func NewApp(pCfg map[models.ProviderID]platform.Config, fetchTimeout time.Duration) (*App, error) {
	platforms, err := Build(pCfg)
	if err != nil {
		return nil, err
	}
	agg := NewAggregator(fetchTimeout, platforms...)
	logger.Debug("已加载平台: %v", agg.Providers())

	return &App{aggregator: agg}, nil
}

// OpenStore 打开账户数据库，只有 HTTP 服务需要
func (a *App) OpenStore(databasePath string) (storage.AccountStorage, error) {
	if a.db != nil {
		return a.db, nil
	}
	if databasePath == "" {
		homeDir, _ := os.UserHomeDir()
		databasePath = filepath.Join(homeDir, ".newshunter", "data", "newshunter.db")
	}
	sqliteDB, err := dbsqlite.NewSQLiteDB(databasePath)
	if err != nil {
		return nil, err
	}
	logger.Info("数据库: %s", databasePath)
	a.db = sqliteDB
	return sqliteDB, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Aggregator() *Aggregator {
	return a.aggregator
}

// Search 校验参数后执行一次聚合搜索
func (a *App) Search(ctx context.Context, raw RawParams) ([]*models.Article, error) {
	q, err := Normalize(models.KindSearch, raw)
	if err != nil {
		return nil, err
	}
	logger.Info("开始搜索: keyword=%q sources=%v page=%d", q.Keyword, q.Sources, q.Page)
	articles := a.aggregator.Search(ctx, q)
	logger.Info("搜索完成，共 %d 条", len(articles))
	return articles, nil
}

// ExportArticles 导出文章到文件
func (a *App) ExportArticles(ctx context.Context, format string, outputPath string, articles []*models.Article) error {
	logger.Info("开始导出: 格式=%s, 输出=%s", format, outputPath)

	var exp exporter.Exporter
	switch format {
	case "csv":
		exp = csv.NewCSVExporter()
	case "json":
		exp = json.NewJSONExporter()
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	if err := exp.Export(articles, outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	logger.Info("导出成功: %d 条 -> %s", len(articles), outputPath)
	return nil
}
