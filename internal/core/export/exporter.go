package export

import (
	"NewsHunter/internal/models"
)

// Exporter 导出器接口
type Exporter interface {
	// Export 导出文章到指定文件
	Export(articles []*models.Article, outputPath string) error
}
