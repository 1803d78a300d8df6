package models

import (
	"strings"
	"time"
)

// ProviderID 上游新闻平台标识，同时用作来源过滤值
type ProviderID string

const (
	NewsAPI      ProviderID = "newsapi"      // 通用搜索类
	Guardian     ProviderID = "guardian"     // 分栏目的 feed 类
	NewYorkTimes ProviderID = "newyorktimes" // 文章档案类
)

// CanonicalProviders 合并结果时使用的固定顺序
var CanonicalProviders = []ProviderID{NewsAPI, Guardian, NewYorkTimes}

var displayNames = map[ProviderID]string{
	NewsAPI:      "News Api Org",
	Guardian:     "Guardian News",
	NewYorkTimes: "New York Times",
}

// DisplayName 写入 Article.Source 的来源名称
func (p ProviderID) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

// Rank 在固定顺序中的位置，未知平台排在最后
func (p ProviderID) Rank() int {
	for i, id := range CanonicalProviders {
		if id == p {
			return i
		}
	}
	return len(CanonicalProviders)
}

func ParseProviderID(s string) (ProviderID, bool) {
	id := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	_, ok := displayNames[id]
	return id, ok
}

// ParseProviderIDs 解析来源列表，未知名称直接忽略；结果去重并按固定顺序排列
func ParseProviderIDs(names []string) []ProviderID {
	seen := make(map[ProviderID]bool, len(names))
	for _, n := range names {
		if id, ok := ParseProviderID(n); ok {
			seen[id] = true
		}
	}
	out := make([]ProviderID, 0, len(seen))
	for _, id := range CanonicalProviders {
		if seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// Article 统一的新闻数据模型，独立于具体平台
// 可选字段用指针表示，序列化时输出 null
type Article struct {
	Title       string  `json:"title"`
	Source      string  `json:"source"`
	Category    *string `json:"category"`
	Author      *string `json:"author"`
	Description *string `json:"desc"`
	URL         string  `json:"url"`
	ImageURL    *string `json:"image"`
	PublishedAt string  `json:"date"` // 保留上游原始精度
}

// Valid 标题与链接缺一不可
func (a *Article) Valid() bool {
	return a != nil && strings.TrimSpace(a.Title) != "" && strings.TrimSpace(a.URL) != ""
}

// StringPtr 空串视为缺失
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref 取指针值，nil 返回空串
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// User 已登录的用户身份
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Preference 用户保存的偏好
type Preference struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Categories []string  `json:"categories"`
	Authors    []string  `json:"authors"`
	Sources    []string  `json:"sources"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
