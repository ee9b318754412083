package models

import (
	"fmt"
)

// Mode 统计模式
type Mode string

const (
	ModeLinks  Mode = "links"  // 可点击链接 a[href]
	ModeImages Mode = "images" // 图片 img[src]
)

// Target 提取目标(标签+属性)
type Target struct {
	Tag  string // 元素标签名
	Attr string // 必须存在的属性名
}

// Selector 返回CSS选择器形式,如 a[href]
func (t Target) Selector() string {
	return fmt.Sprintf("%s[%s]", t.Tag, t.Attr)
}

var (
	// LinkTarget 链接提取目标
	LinkTarget = Target{Tag: "a", Attr: "href"}

	// ImageTarget 图片提取目标
	ImageTarget = Target{Tag: "img", Attr: "src"}
)

// Label 返回报告中使用的类型名称
func (m Mode) Label() string {
	if m == ModeImages {
		return "images"
	}
	return "clickable links"
}

// Target 返回该模式对应的提取目标
func (m Mode) Target() Target {
	if m == ModeImages {
		return ImageTarget
	}
	return LinkTarget
}

// Options 单次运行的参数
type Options struct {
	URL       string // 目标页面URL
	Mode      Mode   // links 或 images
	Detailed  bool   // 输出明细列表
	Stats     bool   // 链接: 输出去重后的绝对URL; 图片: HEAD获取大小
	SavePath  string // 保存报告的文件路径,为空则不保存
	Resources bool   // 输出资源使用快照
}

// NewOptions 根据命令行开关构建运行参数
// link与picture同时为true时返回ModeConflictError,都为false时默认链接模式
func NewOptions(targetURL string, link, picture bool) (Options, error) {
	if link && picture {
		return Options{}, &ModeConflictError{}
	}

	mode := ModeLinks
	if picture {
		mode = ModeImages
	}

	return Options{
		URL:  targetURL,
		Mode: mode,
	}, nil
}

// ShouldSave 是否需要保存报告
func (o Options) ShouldSave() bool {
	return o.SavePath != ""
}
