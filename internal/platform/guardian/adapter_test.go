package guardian

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"NewsHunter/internal/models"
)

const results = `{
  "response": {
    "status": "ok",
    "total": 2,
    "results": [
      {"id": "a", "sectionName": "Environment", "webTitle": "Glaciers retreat",
       "webUrl": "https://theguardian.com/a", "webPublicationDate": "2023-06-27T08:00:00Z"},
      {"id": "b", "sectionName": "", "webTitle": "Heatwave",
       "webUrl": "https://theguardian.com/b", "webPublicationDate": "2023-06-26T08:00:00Z"}
    ]
  }
}`

func newTestAdapter(t *testing.T, searchURL string) *Adapter {
	t.Helper()
	a, err := NewAdapter(&Config{SearchURL: searchURL, APIKey: "g-secret", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewAdapter() failed: %v", err)
	}
	return a
}

func TestAdapter_Fetch(t *testing.T) {
	captured := make(chan url.Values, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case captured <- r.URL.Query():
		default:
		}
		w.Write([]byte(results))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	day := time.Date(2023, 6, 27, 0, 0, 0, 0, time.UTC)
	articles := a.Fetch(context.Background(), models.Query{
		Kind: models.KindSearch, Keyword: "climate", Date: &day, Category: "environment", Page: 1,
	})

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "Glaciers retreat" || articles[1].Title != "Heatwave" {
		t.Errorf("upstream order not preserved")
	}
	a0 := articles[0]
	if a0.Source != "Guardian News" || a0.URL != "https://theguardian.com/a" {
		t.Errorf("unexpected mapping: %+v", a0)
	}
	if models.Deref(a0.Category) != "Environment" {
		t.Errorf("category = %v", a0.Category)
	}
	if a0.Author != nil || a0.Description != nil || a0.ImageURL != nil {
		t.Errorf("author/desc/image must be nil: %+v", a0)
	}
	if articles[1].Category != nil {
		t.Errorf("empty section should map to nil category")
	}

	got := <-captured
	expected := map[string]string{
		"q":            "climate",
		"from-date":    "2023-06-27",
		"to-date":      "2023-06-27",
		"section":      "environment",
		"page":         "1",
		"api-key":      "g-secret",
		"show-tags":    "contributor",
		"show-element": "image",
	}
	for k, v := range expected {
		if got.Get(k) != v {
			t.Errorf("param %s = %q, want %q", k, got.Get(k), v)
		}
	}
}

func TestAdapter_FetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "forbidden", status: http.StatusForbidden, body: `{"message":"Unauthorized"}`},
		{name: "error status in body", status: http.StatusOK, body: `{"response":{"status":"error","message":"bad"}}`},
		{name: "malformed json", status: http.StatusOK, body: `<html>`},
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

func TestAdapter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	a := newTestAdapter(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	articles := a.Fetch(ctx, models.Query{Page: 1})
	if len(articles) != 0 {
		t.Errorf("expected empty result on timeout, got %d", len(articles))
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("fetch did not honour the deadline: %v", elapsed)
	}
}
