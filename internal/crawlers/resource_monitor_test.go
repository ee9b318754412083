package crawlers

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
)

func TestResourceMonitor_Sample(t *testing.T) {
	monitor := NewResourceMonitor(ResourceMonitorConfig{})

	sample, err := monitor.Sample()
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	if sample.CPUPercent < 0 {
		t.Errorf("CPUPercent = %f, 不应为负", sample.CPUPercent)
	}
	if sample.MemoryPercent <= 0 || sample.MemoryPercent > 100 {
		t.Errorf("MemoryPercent = %f, 超出范围", sample.MemoryPercent)
	}
	if sample.DiskPercent < 0 || sample.DiskPercent > 100 {
		t.Errorf("DiskPercent = %f, 超出范围", sample.DiskPercent)
	}
	if sample.TakenAt.IsZero() {
		t.Error("TakenAt 未设置")
	}
}

func TestResourceMonitor_DiskError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	monitor := NewResourceMonitor(ResourceMonitorConfig{DiskPath: missing})

	_, err := monitor.Sample()

	var rErr *models.ResourceError
	if !errors.As(err, &rErr) {
		t.Fatalf("期望ResourceError, 得到 %v", err)
	}
	if rErr.Counter != "disk" {
		t.Errorf("Counter = %q, want disk", rErr.Counter)
	}
}

func TestNewResourceMonitor_Defaults(t *testing.T) {
	monitor := NewResourceMonitor(ResourceMonitorConfig{CPUInterval: -1})
	if monitor.config.DiskPath != DefaultDiskPath {
		t.Errorf("DiskPath = %q, want %q", monitor.config.DiskPath, DefaultDiskPath)
	}
	if monitor.config.CPUInterval != 0 {
		t.Errorf("CPUInterval = %v, want 0", monitor.config.CPUInterval)
	}
}
