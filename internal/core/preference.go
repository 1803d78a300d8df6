package core

import (
	"strings"

	"github.com/samber/lo"

	"NewsHunter/internal/models"
)

// Refinement 由用户偏好推导出的浏览过滤条件
type Refinement struct {
	Category string
	Author   string
	Sources  []models.ProviderID
}

func (r Refinement) Empty() bool {
	return r.Category == "" && r.Author == "" && len(r.Sources) == 0
}

// Resolve 偏好 -> 过滤条件
// 分类和作者只取第一项（偏好里可以存多个，但浏览只按一个过滤），来源使用完整列表
func Resolve(pref *models.Preference) Refinement {
	if pref == nil {
		return Refinement{}
	}
	var r Refinement
	if len(pref.Categories) > 0 {
		r.Category = strings.TrimSpace(pref.Categories[0])
	}
	if len(pref.Authors) > 0 {
		r.Author = strings.TrimSpace(pref.Authors[0])
	}
	if len(pref.Sources) > 0 {
		r.Sources = models.ParseProviderIDs(pref.Sources)
	}
	return r
}

// WithRefinement 返回合并了偏好的新查询；查询自身已有的分类/作者优先，来源取并集
func WithRefinement(q models.Query, r Refinement) models.Query {
	if q.Category == "" {
		q.Category = r.Category
	}
	if q.Author == "" {
		q.Author = r.Author
	}
	if len(r.Sources) > 0 {
		toName := func(id models.ProviderID, _ int) string { return string(id) }
		names := append(lo.Map(q.Sources, toName), lo.Map(r.Sources, toName)...)
		q.Sources = models.ParseProviderIDs(names)
	}
	return q
}
