package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
)

// Reporter 将统计结果写到标准输出(或测试中的缓冲区)
type Reporter struct {
	out io.Writer
}

// NewReporter 创建报告输出器
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

// FormatReport 生成报告文本
// 计数行,明细非空时追加空行、"Details:" 和从1开始编号的条目
func FormatReport(count int, details []string, label string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Number of %s: %d\n", label, count)
	if len(details) > 0 {
		sb.WriteString("\nDetails:\n")
		for i, detail := range details {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, detail)
		}
	}
	return sb.String()
}

// Summary 只输出计数行
func (r *Reporter) Summary(result models.ExtractionResult, label string) {
	fmt.Fprintf(r.out, "Number of %s: %d\n", label, result.Count)
}

// Detailed 输出计数行和明细列表
func (r *Reporter) Detailed(result models.ExtractionResult, label string) {
	io.WriteString(r.out, FormatReport(result.Count, result.Items, label))
}

// LinkStats 输出去重后的绝对链接,逗号分隔
func (r *Reporter) LinkStats(urls []string) {
	fmt.Fprintf(r.out, "\nUnique link URLs:\n%s\n", strings.Join(urls, ", "))
}

// ImageSize 输出单张图片的大小或错误
func (r *Reporter) ImageSize(size models.ImageSize) {
	if size.Failed() {
		fmt.Fprintf(r.out, "Error getting image size for %s: %v\n", size.Src, size.Err)
		return
	}
	fmt.Fprintf(r.out, "Image URL: %s | Size: %s bytes\n", size.URL, size.Size)
}

// FetchFailure 输出页面获取失败原因
func (r *Reporter) FetchFailure(err error) {
	fmt.Fprintf(r.out, "Error fetching URL: %v\n", err)
}

// ModeConflict 输出模式冲突提示
func (r *Reporter) ModeConflict() {
	fmt.Fprintln(r.out, models.ModeConflictMessage)
}

// Saved 输出保存确认
func (r *Reporter) Saved(path string) {
	fmt.Fprintf(r.out, "Results saved to %s\n", path)
}

// FetchDuration 输出页面获取耗时
func (r *Reporter) FetchDuration(d time.Duration) {
	fmt.Fprintf(r.out, "Fetch duration: %.2f seconds\n", d.Seconds())
}

// Resources 输出一次资源快照
func (r *Reporter) Resources(stage models.ResourceStage, s models.ResourceSample) {
	fmt.Fprintf(r.out, "Resource usage (%s):\n", stage)
	fmt.Fprintf(r.out, "  CPU: %.1f%%\n", s.CPUPercent)
	fmt.Fprintf(r.out, "  Memory: %.1f%%\n", s.MemoryPercent)
	fmt.Fprintf(r.out, "  Disk: %.1f%%\n", s.DiskPercent)
	fmt.Fprintf(r.out, "  Network sent: %.2f KB\n", s.SentKB())
	fmt.Fprintf(r.out, "  Network received: %.2f KB\n", s.RecvKB())
}

// SaveReport 覆盖写入报告文件
// 失败时返回 PersistError,调用方应终止运行
func SaveReport(path string, count int, details []string, label string) error {
	content := FormatReport(count, details, label)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &models.PersistError{Path: path, Cause: err}
	}

	Debugf("保存报告: %s (%d 条明细)", path, len(details))
	return nil
}
