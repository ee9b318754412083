package crawlers

import (
	"fmt"
	"net/url"
)

// ResolveURL 将href按RFC 3986解析为相对base的绝对URL
// href无法解析时原样返回
func ResolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// URLSet 按首次出现顺序去重的URL集合
type URLSet struct {
	order []string
	seen  map[string]struct{}
}

// NewURLSet 创建空集合
func NewURLSet() *URLSet {
	return &URLSet{
		order: make([]string, 0),
		seen:  make(map[string]struct{}),
	}
}

// Add 添加URL,已存在时返回false
func (s *URLSet) Add(u string) bool {
	if _, ok := s.seen[u]; ok {
		return false
	}
	s.seen[u] = struct{}{}
	s.order = append(s.order, u)
	return true
}

// Contains 检查URL是否已在集合中
func (s *URLSet) Contains(u string) bool {
	_, ok := s.seen[u]
	return ok
}

// Len 集合大小
func (s *URLSet) Len() int {
	return len(s.order)
}

// Values 按首次出现顺序返回集合内容
func (s *URLSet) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// UniqueResolved 解析所有href并去重,保持首次出现顺序
func UniqueResolved(baseURL string, hrefs []string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("解析baseURL失败: %w", err)
	}

	set := NewURLSet()
	for _, href := range hrefs {
		set.Add(ResolveURL(base, href))
	}
	return set.Values(), nil
}
