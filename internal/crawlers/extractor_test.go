package crawlers

import (
	"reflect"
	"testing"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  models.Target
		want    []string
	}{
		{
			name:    "链接按文档顺序",
			content: `<html><body><a href="/a">A</a><div><a href="https://example.com/b">B</a></div><a href="/a">A again</a></body></html>`,
			target:  models.LinkTarget,
			want:    []string{"/a", "https://example.com/b", "/a"},
		},
		{
			name:    "缺少href的a不计入",
			content: `<a name="top">top</a><a href="/x">x</a>`,
			target:  models.LinkTarget,
			want:    []string{"/x"},
		},
		{
			name:    "空属性值保留",
			content: `<a href="">empty</a>`,
			target:  models.LinkTarget,
			want:    []string{""},
		},
		{
			name:    "图片",
			content: `<img src="x"><img alt="no src"><img src="y"><a href="/not-image">z</a>`,
			target:  models.ImageTarget,
			want:    []string{"x", "y"},
		},
		{
			name:    "无匹配返回空列表",
			content: `<p>nothing here</p>`,
			target:  models.ImageTarget,
			want:    []string{},
		},
		{
			name:    "畸形HTML仍可提取",
			content: `<div><a href="/open">unclosed<p><img src="i.png">`,
			target:  models.ImageTarget,
			want:    []string{"i.png"},
		},
		{
			name:    "属性值不做解析",
			content: `<a href="  /spaced ">s</a><a href="javascript:void(0)">j</a>`,
			target:  models.LinkTarget,
			want:    []string{"  /spaced ", "javascript:void(0)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractFromHTML(tt.content, tt.target)
			if err != nil {
				t.Fatalf("ExtractFromHTML() error = %v", err)
			}
			if result.Count != len(tt.want) {
				t.Errorf("Count = %d, want %d", result.Count, len(tt.want))
			}
			if !reflect.DeepEqual(result.Items, tt.want) {
				t.Errorf("Items = %q, want %q", result.Items, tt.want)
			}
		})
	}
}

func TestExtractLinksAndImages(t *testing.T) {
	doc, err := ParseDocument(`<a href="/a"></a><a href="/b"></a><img src="c.png">`)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	if got := ExtractLinks(doc).Count; got != 2 {
		t.Errorf("链接数 = %d, want 2", got)
	}
	if got := ExtractImages(doc).Count; got != 1 {
		t.Errorf("图片数 = %d, want 1", got)
	}
}
