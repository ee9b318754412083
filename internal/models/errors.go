package models

import (
	"fmt"
	"net/http"
)

// ModeConflictMessage 同时指定 --link 和 --picture 时的提示
const ModeConflictMessage = "Please choose either --link or --picture, not both."

// ModeConflictError 链接模式与图片模式互斥
type ModeConflictError struct{}

// Error 实现error接口
func (e *ModeConflictError) Error() string {
	return ModeConflictMessage
}

// FetchError 目标页面获取失败
// 网络错误时StatusCode为0
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

// Error 实现error接口
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%d %s for url: %s",
			e.StatusCode, http.StatusText(e.StatusCode), e.URL)
	}
	return fmt.Sprintf("%s: %v", e.URL, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ImageProbeError 单张图片HEAD请求失败,不影响其余图片
type ImageProbeError struct {
	Src   string
	URL   string
	Cause error
}

// Error 实现error接口
func (e *ImageProbeError) Error() string {
	return fmt.Sprintf("HEAD %s: %v", e.URL, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ImageProbeError) Unwrap() error {
	return e.Cause
}

// PersistError 报告文件写入失败
type PersistError struct {
	Path  string
	Cause error
}

// Error 实现error接口
func (e *PersistError) Error() string {
	return fmt.Sprintf("写入报告文件失败 [%s]: %v", e.Path, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *PersistError) Unwrap() error {
	return e.Cause
}

// ResourceError 资源采样失败
type ResourceError struct {
	Counter string // cpu, memory, disk, network
	Cause   error
}

// Error 实现error接口
func (e *ResourceError) Error() string {
	return fmt.Sprintf("资源采样失败 [%s]: %v", e.Counter, e.Cause)
}

// Unwrap 支持errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Cause
}
