package newsapi

import (
	"encoding/json"
	"fmt"

	"NewsHunter/internal/models"
	"NewsHunter/pkg/htmltext"
)

type APIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      *string `json:"author"`
		Title       string  `json:"title"`
		Description *string `json:"description"`
		URL         string  `json:"url"`
		URLToImage  *string `json:"urlToImage"`
		PublishedAt string  `json:"publishedAt"`
	} `json:"articles"`
}

func parseResponse(body []byte) ([]*models.Article, error) {
	var raw APIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if raw.Status != "" && raw.Status != "ok" {
		return nil, fmt.Errorf("api status %q: %s %s", raw.Status, raw.Code, raw.Message)
	}

	articles := make([]*models.Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		// 该平台不提供分类
		articles = append(articles, &models.Article{
			Title:       item.Title,
			Source:      models.NewsAPI.DisplayName(),
			Author:      models.StringPtr(models.Deref(item.Author)),
			Description: models.StringPtr(htmltext.Clean(models.Deref(item.Description))),
			URL:         item.URL,
			ImageURL:    models.StringPtr(models.Deref(item.URLToImage)),
			PublishedAt: item.PublishedAt,
		})
	}
	return articles, nil
}
