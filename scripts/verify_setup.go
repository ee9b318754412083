package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/RecoveryAshes/WebsiteChecker/internal/core"
	"github.com/RecoveryAshes/WebsiteChecker/internal/crawlers"
)

func main() {
	fmt.Println("==============================================")
	fmt.Println("  WebsiteChecker 环境验证")
	fmt.Println("==============================================")
	fmt.Println()

	allOK := true

	fmt.Printf("✅ Go版本: %s\n", runtime.Version())
	fmt.Printf("✅ 操作系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// 检查项目依赖
	fmt.Println()
	fmt.Println("检查Go模块依赖...")
	if _, err := os.Stat("go.mod"); err == nil {
		fmt.Println("✅ go.mod文件存在")

		fmt.Println("正在下载依赖...")
		if err := exec.Command("go", "mod", "download").Run(); err != nil {
			fmt.Printf("❌ go mod download失败: %v\n", err)
			allOK = false
		} else {
			fmt.Println("✅ 依赖下载完成")
		}
	} else {
		fmt.Println("❌ go.mod文件不存在")
		allOK = false
	}

	// 检查配置
	fmt.Println()
	fmt.Println("检查配置...")
	cfg, err := core.LoadConfig("")
	if err != nil {
		fmt.Printf("❌ 配置文件无效: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("✅ 配置加载成功 (日志级别=%s, 请求超时=%ds)\n", cfg.Logging.Level, cfg.HTTP.Timeout)

		hm, err := core.NewHeaderManager(cfg.HTTP.HeadersFile, nil)
		if err == nil {
			_, err = hm.GetHeaders()
		}
		if err != nil {
			fmt.Printf("❌ HTTP头部配置无效: %v\n", err)
			allOK = false
		} else {
			fmt.Printf("✅ HTTP头部配置有效 (%d个)\n", len(hm.GetSafeHeaders()))
		}

		// --ressources 依赖这些计数器,采样失败会终止运行
		sample, err := crawlers.NewResourceMonitor(cfg.ResourceMonitorConfig()).Sample()
		if err != nil {
			fmt.Printf("⚠️  资源采样不可用 (-r 将失败): %v\n", err)
		} else {
			fmt.Printf("✅ 资源采样可用: CPU %.1f%%, 内存 %.1f%%, 磁盘 %.1f%%\n",
				sample.CPUPercent, sample.MemoryPercent, sample.DiskPercent)
		}
	}

	// 检查项目结构
	fmt.Println()
	fmt.Println("检查项目结构...")
	requiredDirs := []string{
		"cmd/websitechecker",
		"internal/config",
		"internal/core",
		"internal/crawlers",
		"internal/utils",
		"internal/models",
		"scripts",
	}

	for _, dir := range requiredDirs {
		if _, err := os.Stat(dir); err == nil {
			fmt.Printf("✅ %s/\n", dir)
		} else {
			fmt.Printf("❌ %s/ 不存在\n", dir)
			allOK = false
		}
	}

	fmt.Println()
	fmt.Println("==============================================")
	if allOK {
		fmt.Println("✅ 环境验证通过!")
		fmt.Println()
		fmt.Println("下一步:")
		fmt.Println("  1. 运行 'go build ./cmd/websitechecker' 构建项目")
		fmt.Println("  2. 运行 './websitechecker init-headers' 生成头部配置模板")
		fmt.Println("  3. 运行 './websitechecker --help' 查看帮助")
		os.Exit(0)
	}

	fmt.Println("❌ 环境验证失败,请解决上述问题。")
	os.Exit(1)
}
