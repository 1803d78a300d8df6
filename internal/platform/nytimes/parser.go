package nytimes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"NewsHunter/internal/models"
	"NewsHunter/pkg/htmltext"
)

type APIResponse struct {
	Status   string `json:"status"`
	Fault    any    `json:"fault"`
	Response struct {
		Docs []struct {
			WebURL   string `json:"web_url"`
			Snippet  string `json:"snippet"`
			Source   string `json:"source"`
			NewsDesk string `json:"news_desk"`
			PubDate  string `json:"pub_date"`
			Headline struct {
				Main string `json:"main"`
			} `json:"headline"`
			Byline byline `json:"byline"`
		} `json:"docs"`
	} `json:"response"`
}

type person struct {
	Firstname  string `json:"firstname"`
	Middlename string `json:"middlename"`
	Lastname   string `json:"lastname"`
}

type byline struct {
	Original string   `json:"original"`
	Person   []person `json:"person"`
}

// UnmarshalJSON 没有署名的文档里 byline 可能是 [] 或 null，按空署名处理
func (b *byline) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*b = byline{}
		return nil
	}
	type plain byline
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = byline(p)
	return nil
}

// author 取第一个署名人的 "名 姓"，没有署名人时为 nil
func (b byline) author() *string {
	if len(b.Person) == 0 {
		return nil
	}
	first := b.Person[0]
	return models.StringPtr(strings.TrimSpace(first.Firstname + " " + first.Lastname))
}

func parseResponse(body []byte) ([]*models.Article, error) {
	var raw APIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if raw.Status != "" && raw.Status != "OK" {
		return nil, fmt.Errorf("api status %q", raw.Status)
	}
	if raw.Fault != nil {
		return nil, fmt.Errorf("api fault: %v", raw.Fault)
	}

	articles := make([]*models.Article, 0, len(raw.Response.Docs))
	for _, doc := range raw.Response.Docs {
		// 图片不提供
		articles = append(articles, &models.Article{
			Title:       doc.Headline.Main,
			Source:      models.NewYorkTimes.DisplayName(),
			Category:    models.StringPtr(doc.NewsDesk),
			Author:      doc.Byline.author(),
			Description: models.StringPtr(htmltext.Clean(doc.Snippet)),
			URL:         doc.WebURL,
			PublishedAt: doc.PubDate,
		})
	}
	return articles, nil
}
