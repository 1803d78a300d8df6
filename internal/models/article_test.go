package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseProviderIDs(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []ProviderID
	}{
		{
			name:     "empty",
			input:    nil,
			expected: []ProviderID{},
		},
		{
			name:     "canonical order regardless of input order",
			input:    []string{"newyorktimes", "newsapi"},
			expected: []ProviderID{NewsAPI, NewYorkTimes},
		},
		{
			name:     "unknown names ignored",
			input:    []string{"bbc", "guardian", "reuters"},
			expected: []ProviderID{Guardian},
		},
		{
			name:     "case and spaces normalized, duplicates removed",
			input:    []string{" Guardian ", "GUARDIAN", "guardian"},
			expected: []ProviderID{Guardian},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseProviderIDs(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseProviderIDs(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestArticleJSONNulls(t *testing.T) {
	a := Article{
		Title:       "Title",
		Source:      Guardian.DisplayName(),
		Category:    StringPtr("world"),
		URL:         "https://example.com/a",
		PublishedAt: "2023-06-27T10:00:00Z",
	}

	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	for _, key := range []string{"title", "source", "category", "author", "desc", "url", "image", "date"} {
		if _, ok := m[key]; !ok {
			t.Errorf("key %q missing from %s", key, b)
		}
	}
	for _, key := range []string{"author", "desc", "image"} {
		if m[key] != nil {
			t.Errorf("expected %q to be null, got %v", key, m[key])
		}
	}
	if m["category"] != "world" {
		t.Errorf("category = %v, want world", m["category"])
	}
}

func TestArticleValid(t *testing.T) {
	if (&Article{Title: "t"}).Valid() {
		t.Error("article without url must be invalid")
	}
	if (&Article{URL: "u", Title: "  "}).Valid() {
		t.Error("article with blank title must be invalid")
	}
	if !(&Article{Title: "t", URL: "u"}).Valid() {
		t.Error("article with title and url must be valid")
	}
}

func TestQuerySelects(t *testing.T) {
	q := Query{}
	for _, id := range CanonicalProviders {
		if !q.Selects(id) {
			t.Errorf("empty filter should select %s", id)
		}
	}

	q = Query{Sources: []ProviderID{Guardian}}
	if !q.Selects(Guardian) || q.Selects(NewsAPI) || q.Selects(NewYorkTimes) {
		t.Errorf("filter {guardian} selected wrong providers")
	}
}
