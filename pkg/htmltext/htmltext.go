package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// markup 只认真实的标签和实体：闭合标签、无属性标签、带 name=value 属性的标签、注释、命名/数字实体
// 像 "a<b and c>d" 这样的普通文本不会命中
var markup = regexp.MustCompile(
	`</[a-zA-Z][a-zA-Z0-9]*\s*>` +
		`|<[a-zA-Z][a-zA-Z0-9]*\s*/?>` +
		`|<[a-zA-Z][a-zA-Z0-9]*\s+[^<>]*=[^<>]*>` +
		`|<!--` +
		`|&(?:[a-zA-Z][a-zA-Z0-9]*|#[0-9]+|#[xX][0-9a-fA-F]+);`)

// Clean 去掉上游摘要里的 HTML 标签和实体，并合并空白
// 不含标签或实体的文本原样保留（只做空白合并）
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !markup.MatchString(s) {
		return collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	doc.Find("script, style").Remove()
	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
