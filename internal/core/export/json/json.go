package json

import (
	"encoding/json"
	"fmt"
	"os"

	"NewsHunter/internal/models"
)

type JSONExporter struct{}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(articles []*models.Article, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")  // 格式化输出
	encoder.SetEscapeHTML(false) // 不转义 HTML 字符

	if articles == nil {
		articles = []*models.Article{}
	}
	data := map[string]interface{}{
		"total": len(articles),
		"data":  articles,
	}

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("写入 JSON 失败: %w", err)
	}

	return nil
}
