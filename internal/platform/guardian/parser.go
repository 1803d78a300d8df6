package guardian

import (
	"encoding/json"
	"fmt"

	"NewsHunter/internal/models"
)

type APIResponse struct {
	Response struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Results []struct {
			ID                 string `json:"id"`
			SectionName        string `json:"sectionName"`
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			WebPublicationDate string `json:"webPublicationDate"`
		} `json:"results"`
	} `json:"response"`
}

func parseResponse(body []byte) ([]*models.Article, error) {
	var raw APIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if s := raw.Response.Status; s != "" && s != "ok" {
		return nil, fmt.Errorf("api status %q: %s", s, raw.Response.Message)
	}

	articles := make([]*models.Article, 0, len(raw.Response.Results))
	for _, item := range raw.Response.Results {
		// 作者、摘要、图片该平台不提供
		articles = append(articles, &models.Article{
			Title:       item.WebTitle,
			Source:      models.Guardian.DisplayName(),
			Category:    models.StringPtr(item.SectionName),
			URL:         item.WebURL,
			PublishedAt: item.WebPublicationDate,
		})
	}
	return articles, nil
}
