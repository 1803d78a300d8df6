package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"NewsHunter/internal/models"
)

func TestAppSearchAndExport(t *testing.T) {
	app, err := NewApp(nil, 0)
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	defer app.Close()

	guardian := &stubPlatform{id: models.Guardian, articles: articles(models.Guardian, "g1")}
	newsapi := &stubPlatform{id: models.NewsAPI, articles: articles(models.NewsAPI, "n1", "n2")}
	app.aggregator = NewAggregator(0, guardian, newsapi)

	_, err = app.Search(context.Background(), RawParams{Keyword: "  "})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "keyword" {
		t.Fatalf("expected keyword validation error, got %v", err)
	}
	if guardian.callCount()+newsapi.callCount() != 0 {
		t.Fatal("no platform may be called without a keyword")
	}

	got, err := app.Search(context.Background(), RawParams{Keyword: "climate"})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if ts := titles(got); len(ts) != 3 || ts[0] != "n1" || ts[2] != "g1" {
		t.Errorf("unexpected order %v", ts)
	}

	dir := t.TempDir()
	for _, format := range []string{"csv", "json"} {
		out := filepath.Join(dir, "news."+format)
		if err := app.ExportArticles(context.Background(), format, out, got); err != nil {
			t.Errorf("ExportArticles(%s) failed: %v", format, err)
			continue
		}
		if info, err := os.Stat(out); err != nil || info.Size() == 0 {
			t.Errorf("%s export missing or empty: %v", format, err)
		}
	}
	if err := app.ExportArticles(context.Background(), "xml", filepath.Join(dir, "news.xml"), got); err == nil {
		t.Error("unsupported format must fail")
	}
}

func TestAppOpenStore(t *testing.T) {
	app, err := NewApp(nil, 0)
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	defer app.Close()

	path := filepath.Join(t.TempDir(), "db", "news.db")
	first, err := app.OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() failed: %v", err)
	}
	second, err := app.OpenStore(path)
	if err != nil || second != first {
		t.Errorf("OpenStore() must reuse the open store")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
