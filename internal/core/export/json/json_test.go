package json

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"NewsHunter/internal/models"
)

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "news.json")
	articles := []*models.Article{
		{Title: "A & B", Source: "News Api Org", URL: "https://n/1?a=1&b=2", PublishedAt: "2024-01-01T00:00:00Z"},
	}

	if err := NewJSONExporter().Export(articles, out); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc struct {
		Total int              `json:"total"`
		Data  []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Total != 1 || len(doc.Data) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Data[0]["title"] != "A & B" || doc.Data[0]["author"] != nil {
		t.Errorf("unexpected article %v", doc.Data[0])
	}
}

func TestExportEmpty(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.json")
	if err := NewJSONExporter().Export(nil, out); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	raw, _ := os.ReadFile(out)
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data, ok := doc["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("expected empty array, got %v", doc["data"])
	}
}
