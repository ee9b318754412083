// Package crawlers 提供单页面获取、元素提取和图片大小探测
//
// # 核心组件
//
// ## PageFetcher
//
// 基于Colly的页面获取器,每次Fetch发起一次同步GET请求。
// 支持br/deflate解压(gzip由Colly处理),非成功状态码返回 *models.FetchError。
//
//	fetcher := NewPageFetcher(FetcherConfig{Timeout: 30 * time.Second}, headerProvider)
//	body, err := fetcher.Fetch(ctx, "https://example.com")
//
// ## 提取
//
// ParseDocument 使用 x/net/html 解析页面,Extract 通过cascadia选择器
// 按文档顺序收集 a[href] 或 img[src] 的原始属性值。
//
//	doc, _ := ParseDocument(body)
//	links := ExtractLinks(doc)
//
// ## URLSet
//
// 按首次出现顺序去重的URL集合,UniqueResolved 用它生成 --stats 的链接列表。
//
// ## ImageProber
//
// 对单张图片发HEAD请求并读取Content-Length。不跟随重定向,
// 失败记录在 models.ImageSize.Err 中,调用方继续处理下一张。
//
// ## ResourceMonitor
//
// 基于gopsutil采样CPU、内存、磁盘和网络计数器。
//
//	monitor := NewResourceMonitor(ResourceMonitorConfig{DiskPath: "/"})
//	sample, err := monitor.Sample()
//
// # 配置参数 (configs/config.yaml)
//
//	http:
//	  timeout: 0              # 请求超时(秒),0表示不限制
//	  max_body_size: 0        # 响应体上限(字节),0表示不限制
//
//	resource:
//	  disk_path: /
//	  cpu_interval: 0         # CPU采样间隔(毫秒)
package crawlers
