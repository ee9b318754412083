package crawlers

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ParseDocument 将页面文本解析为文档树
// 解析器容错,畸形HTML也能得到一棵树
func ParseDocument(content string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Extract 按文档顺序收集所有带目标属性的元素的原始属性值
// 属性值不做解析或去重;属性存在但为空时保留空字符串
func Extract(doc *goquery.Document, target models.Target) models.ExtractionResult {
	matcher := cascadia.MustCompile(target.Selector())

	items := make([]string, 0)
	doc.FindMatcher(matcher).Each(func(_ int, s *goquery.Selection) {
		if val, ok := s.Attr(target.Attr); ok {
			items = append(items, val)
		}
	})

	return models.NewExtractionResult(items)
}

// ExtractLinks 提取 <a href> 的原始值
func ExtractLinks(doc *goquery.Document) models.ExtractionResult {
	return Extract(doc, models.LinkTarget)
}

// ExtractImages 提取 <img src> 的原始值
func ExtractImages(doc *goquery.Document) models.ExtractionResult {
	return Extract(doc, models.ImageTarget)
}

// ExtractFromHTML 解析并提取,供只有页面文本的调用方使用
func ExtractFromHTML(content string, target models.Target) (models.ExtractionResult, error) {
	doc, err := ParseDocument(content)
	if err != nil {
		return models.NewExtractionResult(nil), err
	}
	return Extract(doc, target), nil
}
