package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"NewsHunter/internal/models"
)

// RawParams 请求中原样取出的参数
type RawParams struct {
	Keyword  string
	Date     string
	Category string
	Author   string
	Sources  []string // 支持重复参数和逗号分隔
	Page     string
}

// ValidationError 客户端输入错误，应以 400 返回，不会转发给任何平台
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Missing required parameter '%s'", field)}
}

func invalidParam(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Invalid parameter '%s'", field)}
}

// Normalize 把原始参数校验并补全为 models.Query
func Normalize(kind models.QueryKind, raw RawParams) (models.Query, error) {
	q := models.Query{
		Kind:     kind,
		Keyword:  strings.TrimSpace(raw.Keyword),
		Category: strings.TrimSpace(raw.Category),
		Author:   strings.TrimSpace(raw.Author),
		Page:     ParsePage(raw.Page),
	}

	if kind == models.KindSearch && q.Keyword == "" {
		return models.Query{}, missingParam("keyword")
	}

	if d := strings.TrimSpace(raw.Date); d != "" {
		t, err := parseDay(d)
		if err != nil {
			return models.Query{}, invalidParam("date")
		}
		q.Date = &t
	}

	q.Sources = models.ParseProviderIDs(splitList(raw.Sources))
	return q, nil
}

// ParsePage 缺失、非数字或非正数时为 1
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
