package crawlers

import (
	"bytes"
	"compress/flate"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/andybalholm/brotli"
)

func TestPageFetcher_Fetch(t *testing.T) {
	const page = `<html><body><a href="/a">A</a></body></html>`

	t.Run("成功返回页面并附加头部", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		}))
		defer server.Close()

		headers := models.StaticHeaders(http.Header{"User-Agent": []string{"TestBot/1.0"}})
		fetcher := NewPageFetcher(FetcherConfig{}, headers)

		body, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if body != page {
			t.Errorf("body = %q, want %q", body, page)
		}
		if gotUA != "TestBot/1.0" {
			t.Errorf("User-Agent = %q, want TestBot/1.0", gotUA)
		}
	})

	t.Run("404返回FetchError", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL+"/missing")

		var fErr *models.FetchError
		if !errors.As(err, &fErr) {
			t.Fatalf("期望FetchError, 得到 %v", err)
		}
		if fErr.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", fErr.StatusCode)
		}
	})

	t.Run("非200的2xx状态按成功处理", func(t *testing.T) {
		for _, status := range []int{http.StatusCreated, http.StatusNonAuthoritativeInfo, http.StatusPartialContent} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(page))
			}))

			body, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL)
			server.Close()

			if err != nil {
				t.Errorf("HTTP %d: Fetch() error = %v", status, err)
				continue
			}
			if body != page {
				t.Errorf("HTTP %d: body = %q, want %q", status, body, page)
			}
		}
	})

	t.Run("500返回FetchError且不带页面", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(page))
		}))
		defer server.Close()

		body, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL)

		var fErr *models.FetchError
		if !errors.As(err, &fErr) {
			t.Fatalf("期望FetchError, 得到 %v", err)
		}
		if fErr.StatusCode != http.StatusInternalServerError {
			t.Errorf("StatusCode = %d, want 500", fErr.StatusCode)
		}
		if body != "" {
			t.Errorf("body = %q, want empty", body)
		}
	})

	t.Run("连接失败返回FetchError且状态码为0", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		target := server.URL
		server.Close()

		_, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), target)

		var fErr *models.FetchError
		if !errors.As(err, &fErr) {
			t.Fatalf("期望FetchError, 得到 %v", err)
		}
		if fErr.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0", fErr.StatusCode)
		}
	})

	t.Run("无效URL不发请求", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer server.Close()

		_, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), "not a url")

		var fErr *models.FetchError
		if !errors.As(err, &fErr) {
			t.Fatalf("期望FetchError, 得到 %v", err)
		}
		if atomic.LoadInt32(&hits) != 0 {
			t.Errorf("不应发出请求, 实际 %d 次", hits)
		}
	})

	t.Run("brotli压缩响应被解压", func(t *testing.T) {
		var compressed bytes.Buffer
		bw := brotli.NewWriter(&compressed)
		_, _ = bw.Write([]byte(page))
		_ = bw.Close()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Header().Set("Content-Encoding", "br")
			_, _ = w.Write(compressed.Bytes())
		}))
		defer server.Close()

		body, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if body != page {
			t.Errorf("body = %q, want %q", body, page)
		}
	})
}

func TestDecompressResponse(t *testing.T) {
	original := []byte("<html><body>hello</body></html>")

	var deflated bytes.Buffer
	fw, _ := flate.NewWriter(&deflated, flate.DefaultCompression)
	_, _ = fw.Write(original)
	_ = fw.Close()

	var brotlied bytes.Buffer
	bw := brotli.NewWriter(&brotlied)
	_, _ = bw.Write(original)
	_ = bw.Close()

	tests := []struct {
		name     string
		encoding string
		body     []byte
		wantErr  bool
	}{
		{"无编码", "", original, false},
		{"identity", "identity", original, false},
		{"gzip已由colly处理", "gzip", original, false},
		{"deflate", "deflate", deflated.Bytes(), false},
		{"br大小写不敏感", " BR ", brotlied.Bytes(), false},
		{"未知编码原样返回", "zstd", original, false},
		{"损坏的deflate", "deflate", []byte("not deflate"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decompressResponse(tt.encoding, tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("期望错误=%v, 实际错误=%v", tt.wantErr, err)
			}
			if !tt.wantErr && !bytes.Equal(got, original) {
				t.Errorf("解压结果 = %q, want %q", got, original)
			}
		})
	}
}

func TestPageFetcher_BodySize(t *testing.T) {
	// 超过colly默认10MB上限的页面,链接位于末尾
	const tail = `<a href="/tail">tail</a></body></html>`
	large := "<html><body>" + strings.Repeat("x", 11*1024*1024) + tail

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(large))
	}))
	defer server.Close()

	t.Run("默认不限制大小读取完整页面", func(t *testing.T) {
		body, err := NewPageFetcher(FetcherConfig{}, nil).Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if len(body) != len(large) {
			t.Fatalf("len(body) = %d, want %d", len(body), len(large))
		}

		result, err := ExtractFromHTML(body, models.LinkTarget)
		if err != nil {
			t.Fatalf("ExtractFromHTML() error = %v", err)
		}
		if result.Count != 1 {
			t.Errorf("链接数 = %d, want 1", result.Count)
		}
	})

	t.Run("达到上限返回FetchError而不是部分页面", func(t *testing.T) {
		fetcher := NewPageFetcher(FetcherConfig{MaxBodySize: 1024 * 1024}, nil)

		body, err := fetcher.Fetch(context.Background(), server.URL)

		var fErr *models.FetchError
		if !errors.As(err, &fErr) {
			t.Fatalf("期望FetchError, 得到 %v", err)
		}
		if body != "" {
			t.Errorf("截断时不应返回页面, 得到 %d 字节", len(body))
		}
	})

	t.Run("上限以内正常返回", func(t *testing.T) {
		fetcher := NewPageFetcher(FetcherConfig{MaxBodySize: 64 * 1024 * 1024}, nil)

		body, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if !strings.HasSuffix(body, tail) {
			t.Error("页面末尾内容丢失")
		}
	})
}
