package models

// UnknownSize HEAD响应缺少Content-Length时的占位值
const UnknownSize = "unknown"

// ExtractionResult 提取结果
// Count 始终等于 len(Items),只能通过 NewExtractionResult 构建
type ExtractionResult struct {
	Count int      `json:"count"`
	Items []string `json:"items"` // 原始属性值,保持文档顺序
}

// NewExtractionResult 从属性值列表创建提取结果
func NewExtractionResult(items []string) ExtractionResult {
	if items == nil {
		items = []string{}
	}
	return ExtractionResult{
		Count: len(items),
		Items: items,
	}
}

// IsEmpty 是否没有任何匹配
func (r ExtractionResult) IsEmpty() bool {
	return r.Count == 0
}

// ImageSize 单张图片的HEAD探测结果
type ImageSize struct {
	Src  string // 页面中的原始src
	URL  string // 解析后的绝对URL
	Size string // Content-Length 或 UnknownSize
	Err  error  // 请求失败时非nil,此时Size无意义
}

// Failed 探测是否失败
func (s ImageSize) Failed() bool {
	return s.Err != nil
}
