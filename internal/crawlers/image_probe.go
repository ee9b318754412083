package crawlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/RecoveryAshes/WebsiteChecker/internal/utils"
	"github.com/gocolly/colly/v2"
)

// ImageProber 图片大小探测器
// 对每张图片发HEAD请求,读取Content-Length
type ImageProber struct {
	config         FetcherConfig
	headerProvider models.HeaderProvider
}

// NewImageProber 创建图片大小探测器
func NewImageProber(config FetcherConfig, headerProvider models.HeaderProvider) *ImageProber {
	return &ImageProber{
		config:         config,
		headerProvider: headerProvider,
	}
}

// Probe 解析src并发送一次HEAD请求
// 不跟随重定向;非2xx响应也按其Content-Length报告
// 失败只记录在返回值的Err中,不影响调用方处理其他图片
func (p *ImageProber) Probe(ctx context.Context, baseURL, src string) models.ImageSize {
	result := models.ImageSize{Src: src, URL: src, Size: models.UnknownSize}

	base, err := url.Parse(baseURL)
	if err != nil {
		result.Err = &models.ImageProbeError{Src: src, URL: src, Cause: err}
		return result
	}
	result.URL = ResolveURL(base, src)

	headers, err := requestHeaders(p.headerProvider)
	if err != nil {
		result.Err = &models.ImageProbeError{Src: src, URL: result.URL, Cause: err}
		return result
	}

	c := newCollector(ctx, p.config, colly.ParseHTTPErrorResponse())
	c.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	})

	c.OnRequest(func(r *colly.Request) {
		applyHeaders(r, headers)
		// HEAD响应没有body,避免按gzip解码空body
		r.Headers.Del("Accept-Encoding")
	})

	c.OnResponse(func(r *colly.Response) {
		if r.Headers == nil {
			return
		}
		if length := r.Headers.Get("Content-Length"); length != "" {
			result.Size = length
		}
	})

	if err := c.Head(result.URL); err != nil {
		utils.Debugf("HEAD失败 [%s]: %v", result.URL, err)
		result.Err = &models.ImageProbeError{Src: src, URL: result.URL, Cause: err}
		return result
	}

	utils.Debugf("HEAD %s: Content-Length=%s", result.URL, result.Size)
	return result
}
