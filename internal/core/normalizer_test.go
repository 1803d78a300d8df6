package core

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"NewsHunter/internal/models"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 1},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"1", 1},
		{" 7 ", 7},
	}
	for _, tt := range tests {
		if got := ParsePage(tt.input); got != tt.expected {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestNormalize_Search(t *testing.T) {
	q, err := Normalize(models.KindSearch, RawParams{
		Keyword:  "  climate ",
		Date:     "2023-06-27",
		Category: "science",
		Sources:  []string{"newyorktimes,bbc", "newsapi"},
		Page:     "2",
	})
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	if q.Kind != models.KindSearch || q.Keyword != "climate" || q.Category != "science" || q.Page != 2 {
		t.Errorf("unexpected query: %+v", q)
	}
	want := time.Date(2023, 6, 27, 0, 0, 0, 0, time.UTC)
	if q.Date == nil || !q.Date.Equal(want) {
		t.Errorf("date = %v, want %v", q.Date, want)
	}
	if !reflect.DeepEqual(q.Sources, []models.ProviderID{models.NewsAPI, models.NewYorkTimes}) {
		t.Errorf("sources = %v", q.Sources)
	}
}

func TestNormalize_MissingKeyword(t *testing.T) {
	for _, kw := range []string{"", "   "} {
		_, err := Normalize(models.KindSearch, RawParams{Keyword: kw})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for keyword %q, got %v", kw, err)
		}
		if verr.Field != "keyword" {
			t.Errorf("field = %q", verr.Field)
		}
		if verr.Error() != "Missing required parameter 'keyword'" {
			t.Errorf("message = %q", verr.Error())
		}
	}
}

func TestNormalize_Browse(t *testing.T) {
	q, err := Normalize(models.KindBrowse, RawParams{})
	if err != nil {
		t.Fatalf("browse must not require keyword: %v", err)
	}
	if q.Page != 1 || q.Category != "" || q.Author != "" || len(q.Sources) != 0 || q.Date != nil {
		t.Errorf("expected empty browse query, got %+v", q)
	}
}

func TestNormalize_Date(t *testing.T) {
	q, err := Normalize(models.KindSearch, RawParams{Keyword: "k", Date: "2023-06-27T18:30:00+02:00"})
	if err != nil {
		t.Fatalf("RFC3339 date rejected: %v", err)
	}
	if got := q.DateString("2006-01-02"); got != "2023-06-27" {
		t.Errorf("date truncated to %q", got)
	}

	_, err = Normalize(models.KindSearch, RawParams{Keyword: "k", Date: "27/06/2023"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "date" {
		t.Errorf("expected date ValidationError, got %v", err)
	}
}

func TestNormalize_UnknownSourcesIgnored(t *testing.T) {
	q, err := Normalize(models.KindSearch, RawParams{Keyword: "k", Sources: []string{"reuters", "bbc"}})
	if err != nil {
		t.Fatalf("unknown sources must not be an error: %v", err)
	}
	if len(q.Sources) != 0 {
		t.Errorf("expected no filter, got %v", q.Sources)
	}
}
