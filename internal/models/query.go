package models

import (
	"time"
)

type QueryKind int

const (
	KindBrowse QueryKind = iota
	KindSearch
)

func (k QueryKind) String() string {
	if k == KindSearch {
		return "search"
	}
	return "browse"
}

// Query 与平台无关的查询条件，每个请求构造一次，之后只读
type Query struct {
	Kind     QueryKind
	Keyword  string
	Date     *time.Time // 只精确到天
	Category string
	Author   string
	Sources  []ProviderID // 空表示不过滤
	Page     int
}

// Selects 该平台是否在过滤范围内
func (q Query) Selects(id ProviderID) bool {
	if len(q.Sources) == 0 {
		return true
	}
	for _, s := range q.Sources {
		if s == id {
			return true
		}
	}
	return false
}

// DateString 按给定 layout 格式化日期，未设置时返回空串
func (q Query) DateString(layout string) string {
	if q.Date == nil {
		return ""
	}
	return q.Date.Format(layout)
}
