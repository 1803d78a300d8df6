package nytimes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsHunter/internal/models"
)

const docs = `{
  "status": "OK",
  "response": {
    "docs": [
      {"web_url": "https://nytimes.com/1", "snippet": "Ice <b>melts</b>", "source": "The New York Times",
       "news_desk": "Climate", "pub_date": "2023-06-27T09:00:00+0000",
       "headline": {"main": "Ice melts"},
       "byline": {"original": "By Ann Lee and Bo Chen", "person": [
         {"firstname": "Ann", "lastname": "Lee"}, {"firstname": "Bo", "lastname": "Chen"}]}},
      {"web_url": "https://nytimes.com/2", "snippet": "", "news_desk": "",
       "pub_date": "2023-06-26", "headline": {"main": "Unsigned"},
       "byline": {"original": null, "person": []}},
      {"web_url": "https://nytimes.com/3", "snippet": "s", "news_desk": "Metro",
       "pub_date": "2023-06-25", "headline": {"main": "Legacy byline"}, "byline": []},
      {"web_url": "", "headline": {"main": "Missing link"}, "byline": null}
    ]
  }
}`

func newTestAdapter(t *testing.T, searchURL string) *Adapter {
	t.Helper()
	a, err := NewAdapter(&Config{SearchURL: searchURL, APIKey: "n-secret", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewAdapter() failed: %v", err)
	}
	return a
}

func TestAdapter_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(docs))
	}))
	defer srv.Close()

	articles := newTestAdapter(t, srv.URL).Fetch(context.Background(), models.Query{Keyword: "ice", Page: 1})
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles (record without url dropped), got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Ice melts" || first.URL != "https://nytimes.com/1" {
		t.Errorf("unexpected mapping: %+v", first)
	}
	if first.Source != "New York Times" {
		t.Errorf("source = %q", first.Source)
	}
	if models.Deref(first.Author) != "Ann Lee" {
		t.Errorf("author = %v, want first byline person", first.Author)
	}
	if models.Deref(first.Category) != "Climate" {
		t.Errorf("category = %v", first.Category)
	}
	if models.Deref(first.Description) != "Ice melts" {
		t.Errorf("description = %q", models.Deref(first.Description))
	}
	if first.ImageURL != nil {
		t.Errorf("image must be nil")
	}
	if first.PublishedAt != "2023-06-27T09:00:00+0000" {
		t.Errorf("date precision not preserved: %q", first.PublishedAt)
	}

	if articles[1].Author != nil {
		t.Errorf("empty byline person list must give nil author, got %q", *articles[1].Author)
	}
	if articles[1].Description != nil || articles[1].Category != nil {
		t.Errorf("empty snippet/desk must map to nil")
	}
	if articles[2].Author != nil {
		t.Errorf("legacy array byline must give nil author")
	}
}

func TestAdapter_BuildParams(t *testing.T) {
	a := newTestAdapter(t, "https://api.nytimes.com/svc/search/v2/articlesearch.json")
	day := time.Date(2023, 6, 27, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    models.Query
		expected map[string]string
	}{
		{
			name:  "search with category uses news_desk",
			query: models.Query{Kind: models.KindSearch, Keyword: "climate", Date: &day, Category: "Science", Page: 3},
			expected: map[string]string{
				"q": "climate", "begin_date": "20230627", "end_date": "20230627",
				"fq": "news_desk:Science", "page": "3", "api-key": "n-secret",
			},
		},
		{
			name:     "browse with category and author",
			query:    models.Query{Kind: models.KindBrowse, Category: "world", Author: "Ann Lee", Page: 1},
			expected: map[string]string{"fq": "section_name:world OR byline:'Ann Lee'", "page": "1"},
		},
		{
			name:     "browse with author only",
			query:    models.Query{Kind: models.KindBrowse, Author: "Ann Lee", Page: 1},
			expected: map[string]string{"fq": "byline:'Ann Lee'"},
		},
		{
			name:     "browse without refinement",
			query:    models.Query{Kind: models.KindBrowse, Page: 1},
			expected: map[string]string{"fq": "", "q": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := a.buildParams(tt.query)
			for k, v := range tt.expected {
				if got := params.Get(k); got != v {
					t.Errorf("param %s = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestAdapter_FetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"fault":{"faultstring":"Invalid ApiKey"}}`},
		{name: "not found", status: http.StatusNotFound, body: ``},
		{name: "truncated json", status: http.StatusOK, body: `{"status":"OK","response":{"docs":[{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			if articles := newTestAdapter(t, srv.URL).Fetch(context.Background(), models.Query{Page: 1}); len(articles) != 0 {
				t.Errorf("expected empty result, got %d", len(articles))
			}
		})
	}
}

func TestAdapter_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	a := newTestAdapter(t, target)
	if articles := a.Fetch(context.Background(), models.Query{Keyword: "x", Page: 1}); len(articles) != 0 {
		t.Errorf("expected empty result, got %d", len(articles))
	}
}

func TestAdapter_PlainTextSnippet(t *testing.T) {
	tests := []struct {
		name    string
		snippet string
		want    string
	}{
		{"comparison operators", `Use a<b and c>d`, "Use a<b and c>d"},
		{"percent and ampersand", `Revenue<5% & profit>3% in Q3`, "Revenue<5% & profit>3% in Q3"},
		{"markup", `Ice <b>melts</b> fast`, "Ice melts fast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(map[string]any{
				"status": "OK",
				"response": map[string]any{"docs": []map[string]any{{
					"web_url":  "https://nytimes.com/1",
					"snippet":  tt.snippet,
					"headline": map[string]string{"main": "Headline"},
				}}},
			})
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write(body)
			}))
			defer srv.Close()

			articles := newTestAdapter(t, srv.URL).Fetch(context.Background(), models.Query{Keyword: "x", Page: 1})
			if len(articles) != 1 {
				t.Fatalf("expected 1 article, got %d", len(articles))
			}
			if got := models.Deref(articles[0].Description); got != tt.want {
				t.Errorf("desc = %q, want %q", got, tt.want)
			}
		})
	}
}
