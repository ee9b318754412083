package models

import "time"

// ResourceSample 主机资源快照
type ResourceSample struct {
	CPUPercent    float64   `json:"cpu_percent"`    // CPU使用率(%)
	MemoryPercent float64   `json:"memory_percent"` // 内存使用率(%)
	DiskPercent   float64   `json:"disk_percent"`   // 磁盘使用率(%)
	BytesSent     uint64    `json:"bytes_sent"`     // 累计发送字节
	BytesRecv     uint64    `json:"bytes_recv"`     // 累计接收字节
	TakenAt       time.Time `json:"taken_at"`
}

// SentKB 累计发送量(KB)
func (s ResourceSample) SentKB() float64 {
	return float64(s.BytesSent) / 1024
}

// RecvKB 累计接收量(KB)
func (s ResourceSample) RecvKB() float64 {
	return float64(s.BytesRecv) / 1024
}

// ResourceStage 采样时间点
type ResourceStage string

const (
	StageBeforeFetch ResourceStage = "before fetch"
	StageAfterFetch  ResourceStage = "after fetch"
	StageAfterReport ResourceStage = "after processing"
)
