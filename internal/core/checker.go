package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/RecoveryAshes/WebsiteChecker/internal/crawlers"
	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/RecoveryAshes/WebsiteChecker/internal/utils"
)

// PageFetcher 获取目标页面文本
type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string) (string, error)
}

// ImageProber 探测单张图片大小
type ImageProber interface {
	Probe(ctx context.Context, baseURL, src string) models.ImageSize
}

// ResourceSampler 采样主机资源
type ResourceSampler interface {
	Sample() (models.ResourceSample, error)
}

// Report 一次检查的结果
type Report struct {
	Result        models.ExtractionResult
	UniqueLinks   []string           // 仅链接模式 --stats
	ImageSizes    []models.ImageSize // 仅图片模式 --stats
	FetchDuration time.Duration
	Saved         bool
}

// Checker 单页面检查协调器
// 流程: 资源采样 → 获取 → 资源采样 → 解析提取 → 报告 → 统计 → 保存 → 资源采样
type Checker struct {
	options  models.Options
	fetcher  PageFetcher
	prober   ImageProber
	monitor  ResourceSampler
	reporter *utils.Reporter

	// progress 不为nil时在其上显示spinner和进度条(通常为交互式stderr)
	progress io.Writer
}

// NewChecker 创建检查器
// prober只在图片模式 --stats 时使用,monitor只在 --ressources 时使用
func NewChecker(options models.Options, fetcher PageFetcher, prober ImageProber, monitor ResourceSampler, out io.Writer) *Checker {
	return &Checker{
		options:  options,
		fetcher:  fetcher,
		prober:   prober,
		monitor:  monitor,
		reporter: utils.NewReporter(out),
	}
}

// SetProgressWriter 设置终端反馈输出,nil表示关闭
func (c *Checker) SetProgressWriter(w io.Writer) {
	c.progress = w
}

// Run 执行检查
// 页面获取失败时输出 "Error fetching URL: ..." 并返回 *models.FetchError,不做任何后续处理
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	label := c.options.Mode.Label()
	utils.Infof("开始检查: %s (模式=%s)", c.options.URL, c.options.Mode)

	if err := c.sampleResources(models.StageBeforeFetch); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := c.fetch(ctx)
	duration := time.Since(start)
	if err != nil {
		utils.Errorf("页面获取失败: %v", err)
		c.reporter.FetchFailure(err)
		return nil, err
	}
	utils.Debugf("页面获取完成: %d 字符, 耗时 %v", len(body), duration)

	if c.options.Resources {
		c.reporter.FetchDuration(duration)
	}
	if err := c.sampleResources(models.StageAfterFetch); err != nil {
		return nil, err
	}

	doc, err := crawlers.ParseDocument(body)
	if err != nil {
		return nil, err
	}
	result := crawlers.Extract(doc, c.options.Mode.Target())

	report := &Report{
		Result:        result,
		FetchDuration: duration,
	}

	if c.options.Detailed {
		c.reporter.Detailed(result, label)
	} else {
		c.reporter.Summary(result, label)
	}

	if c.options.Stats {
		if err := c.stats(ctx, report); err != nil {
			return report, err
		}
	}

	if c.options.ShouldSave() {
		if err := utils.SaveReport(c.options.SavePath, result.Count, result.Items, label); err != nil {
			utils.Errorf("%v", err)
			return report, err
		}
		report.Saved = true
		c.reporter.Saved(c.options.SavePath)
	}

	if err := c.sampleResources(models.StageAfterReport); err != nil {
		return report, err
	}

	utils.Infof("检查完成: %s 共 %d 个%s", c.options.URL, result.Count, label)
	return report, nil
}

// fetch 获取页面,交互式终端上显示spinner
func (c *Checker) fetch(ctx context.Context) (string, error) {
	if c.progress != nil {
		s := utils.StartSpinner(c.progress, "Fetching "+c.options.URL)
		defer s.Stop()
	}
	return c.fetcher.Fetch(ctx, c.options.URL)
}

// stats 链接模式输出去重后的绝对URL,图片模式逐张HEAD
func (c *Checker) stats(ctx context.Context, report *Report) error {
	switch c.options.Mode {
	case models.ModeImages:
		report.ImageSizes = c.probeImages(ctx, report.Result.Items)
	default:
		unique, err := crawlers.UniqueResolved(c.options.URL, report.Result.Items)
		if err != nil {
			return err
		}
		report.UniqueLinks = unique
		c.reporter.LinkStats(unique)
	}
	return nil
}

// probeImages 按顺序逐张探测,单张失败只输出错误行
func (c *Checker) probeImages(ctx context.Context, srcs []string) []models.ImageSize {
	sizes := make([]models.ImageSize, 0, len(srcs))
	if c.prober == nil {
		utils.Warnf("未配置图片探测器,跳过 %d 张图片", len(srcs))
		return sizes
	}

	var clearBar, advance func()
	if c.progress != nil && len(srcs) > 0 {
		bar := utils.NewProgressBar(len(srcs), "HEAD", c.progress)
		defer bar.Finish()
		clearBar = func() { _ = bar.Clear() }
		advance = func() { _ = bar.Add(1) }
	}

	for _, src := range srcs {
		size := c.prober.Probe(ctx, c.options.URL, src)
		if size.Failed() {
			utils.Warnf("图片大小获取失败 [%s]: %v", src, size.Err)
		}
		sizes = append(sizes, size)

		if clearBar != nil {
			clearBar()
		}
		c.reporter.ImageSize(size)
		if advance != nil {
			advance()
		}
	}

	return sizes
}

// sampleResources 开启 --ressources 时采样并输出资源块
func (c *Checker) sampleResources(stage models.ResourceStage) error {
	if !c.options.Resources {
		return nil
	}
	if c.monitor == nil {
		return fmt.Errorf("资源采样器未配置")
	}

	sample, err := c.monitor.Sample()
	if err != nil {
		utils.Errorf("资源采样失败 (%s): %v", stage, err)
		return err
	}
	c.reporter.Resources(stage, sample)
	return nil
}
