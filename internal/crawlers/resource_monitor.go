package crawlers

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// DefaultDiskPath 磁盘使用率默认采样路径
const DefaultDiskPath = "/"

// ResourceMonitor 系统资源采样器
// 职责: 读取CPU、内存、磁盘、网络计数器,生成一次性快照
type ResourceMonitor struct {
	config ResourceMonitorConfig
}

// ResourceMonitorConfig 资源采样配置
type ResourceMonitorConfig struct {
	DiskPath    string        // 磁盘使用率采样路径
	CPUInterval time.Duration // CPU采样间隔,0表示与上次调用比较
}

// NewResourceMonitor 创建资源采样器
func NewResourceMonitor(config ResourceMonitorConfig) *ResourceMonitor {
	if config.DiskPath == "" {
		config.DiskPath = DefaultDiskPath
	}
	if config.CPUInterval < 0 {
		config.CPUInterval = 0
	}
	return &ResourceMonitor{config: config}
}

// Sample 采样一次系统资源
// 任一计数器读取失败都返回 *models.ResourceError
func (rm *ResourceMonitor) Sample() (models.ResourceSample, error) {
	var sample models.ResourceSample

	// perCPU=false 返回所有CPU的平均使用率
	percentages, err := cpu.Percent(rm.config.CPUInterval, false)
	if err != nil {
		return sample, &models.ResourceError{Counter: "cpu", Cause: err}
	}
	if len(percentages) == 0 {
		return sample, &models.ResourceError{Counter: "cpu", Cause: fmt.Errorf("CPU使用率数据为空")}
	}
	sample.CPUPercent = percentages[0]

	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return sample, &models.ResourceError{Counter: "memory", Cause: err}
	}
	sample.MemoryPercent = vmStat.UsedPercent

	usage, err := disk.Usage(rm.config.DiskPath)
	if err != nil {
		return sample, &models.ResourceError{Counter: "disk", Cause: err}
	}
	sample.DiskPercent = usage.UsedPercent

	// pernic=false 返回所有网卡的合计
	counters, err := psnet.IOCounters(false)
	if err != nil {
		return sample, &models.ResourceError{Counter: "network", Cause: err}
	}
	if len(counters) > 0 {
		sample.BytesSent = counters[0].BytesSent
		sample.BytesRecv = counters[0].BytesRecv
	}

	sample.TakenAt = time.Now()

	log.Debug().
		Float64("cpu", sample.CPUPercent).
		Float64("memory", sample.MemoryPercent).
		Float64("disk", sample.DiskPercent).
		Uint64("sent", sample.BytesSent).
		Uint64("recv", sample.BytesRecv).
		Msg("资源采样完成")

	return sample, nil
}
