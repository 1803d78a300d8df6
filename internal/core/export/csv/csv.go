package csv

import (
	"encoding/csv"
	"fmt"
	"os"

	"NewsHunter/internal/models"
)

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(articles []*models.Article, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建文件失败: %w", err)
	}
	defer file.Close()

	// Excel 需要 BOM 才能正确识别 UTF-8
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("写入 BOM 失败: %w", err)
	}

	writer := csv.NewWriter(file)

	headers := []string{"Title", "Source", "Category", "Author", "Description", "URL", "Image", "Date"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for _, a := range articles {
		if a == nil {
			continue
		}
		record := []string{
			a.Title,
			a.Source,
			models.Deref(a.Category),
			models.Deref(a.Author),
			truncate(models.Deref(a.Description), 500),
			a.URL,
			models.Deref(a.ImageURL),
			a.PublishedAt,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("写入数据失败: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("写入数据失败: %w", err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
