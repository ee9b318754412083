package crawlers

import (
	"bytes"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/RecoveryAshes/WebsiteChecker/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
)

// FetcherConfig HTTP请求配置
type FetcherConfig struct {
	Timeout     time.Duration // 单次请求超时,0表示不限制
	MaxBodySize int           // 响应体上限(字节),0表示不限制
}

// PageFetcher 目标页面获取器(使用Colly)
// 每次Fetch创建新的collector,不保留访问历史
type PageFetcher struct {
	config         FetcherConfig
	headerProvider models.HeaderProvider
}

// NewPageFetcher 创建页面获取器
func NewPageFetcher(config FetcherConfig, headerProvider models.HeaderProvider) *PageFetcher {
	return &PageFetcher{
		config:         config,
		headerProvider: headerProvider,
	}
}

// Fetch 发起一次阻塞的GET请求并返回页面文本
// 网络错误、URL无效、状态码>=400或响应体达到上限都返回 *models.FetchError
func (f *PageFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	if err := models.ValidateURL(targetURL); err != nil {
		return "", &models.FetchError{URL: targetURL, Cause: err}
	}

	headers, err := requestHeaders(f.headerProvider)
	if err != nil {
		return "", err
	}

	// 2xx/3xx响应都按成功处理,状态码>=400在Visit返回后判断
	c := newCollector(ctx, f.config, colly.ParseHTTPErrorResponse())

	c.OnRequest(func(r *colly.Request) {
		applyHeaders(r, headers)
		utils.Debugf("GET %s", r.URL.String())
	})

	var (
		body       []byte
		statusCode int
		encoding   string
	)

	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		if statusCode >= http.StatusBadRequest {
			return
		}
		body = r.Body
		if r.Headers != nil {
			encoding = r.Headers.Get("Content-Encoding")
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		statusCode = r.StatusCode
		utils.Debugf("页面获取失败 [%s]: HTTP %d, %v", targetURL, r.StatusCode, err)
	})

	if err := c.Visit(targetURL); err != nil {
		return "", &models.FetchError{URL: targetURL, StatusCode: statusCode, Cause: err}
	}
	if statusCode >= http.StatusBadRequest {
		utils.Debugf("页面获取失败 [%s]: HTTP %d", targetURL, statusCode)
		return "", &models.FetchError{URL: targetURL, StatusCode: statusCode}
	}
	// colly按上限截断body且不报错,截断后的页面计数不可信
	if f.config.MaxBodySize > 0 && len(body) >= f.config.MaxBodySize {
		return "", &models.FetchError{
			URL:   targetURL,
			Cause: fmt.Errorf("响应体达到上限 %d 字节,页面可能被截断", f.config.MaxBodySize),
		}
	}

	content, err := decompressResponse(encoding, body)
	if err != nil {
		// 解压失败,仍然使用原始body
		utils.Warnf("解压响应失败 [%s] (编码=%s): %v", targetURL, encoding, err)
		content = body
	}

	utils.Debugf("页面获取成功 [%s]: HTTP %d, %d bytes", targetURL, statusCode, len(content))
	return string(content), nil
}

// newCollector 创建同步collector
// colly默认10秒超时和10MB响应体上限,这里总是用配置值覆盖(0表示不限制)
func newCollector(ctx context.Context, config FetcherConfig, options ...colly.CollectorOption) *colly.Collector {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.MaxBodySize(config.MaxBodySize),
	}
	opts = append(opts, options...)

	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(config.Timeout)
	return c
}

// requestHeaders 从提供者获取请求头,提供者为空时不附加任何头部
func requestHeaders(provider models.HeaderProvider) (http.Header, error) {
	if provider == nil {
		return http.Header{}, nil
	}
	headers, err := provider.GetHeaders()
	if err != nil {
		return nil, fmt.Errorf("获取HTTP头部失败: %w", err)
	}
	return headers, nil
}

// applyHeaders 将头部写入colly请求,每个头部只取第一个值
func applyHeaders(r *colly.Request, headers http.Header) {
	for name, values := range headers {
		if len(values) > 0 {
			r.Headers.Set(name, values[0])
		}
	}
}

// decompressResponse 根据Content-Encoding解压响应体
// gzip已由colly解压,这里只处理 br 和 deflate
func decompressResponse(contentEncoding string, body []byte) ([]byte, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "", "identity", "gzip":
		return body, nil

	case "deflate":
		reader := flate.NewReader(bytes.NewReader(body))
		defer reader.Close()

		decompressed, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("deflate读取失败: %w", err)
		}
		return decompressed, nil

	case "br":
		decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("brotli读取失败: %w", err)
		}
		return decompressed, nil

	default:
		utils.Warnf("未知的Content-Encoding: %s", contentEncoding)
		return body, nil
	}
}
