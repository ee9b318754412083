package models

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// ValidateURL 检查目标页面URL: 必须是带主机名的 http/https 地址
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("URL格式无效: %w", err)
	}
	if parsed.Scheme == "" {
		return fmt.Errorf("URL缺少协议(http/https): %s", urlStr)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL协议必须是http或https: %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL缺少主机名: %s", urlStr)
	}
	return nil
}

// NewRunID 生成本次运行的唯一ID,用于日志关联
func NewRunID() string {
	return uuid.New().String()
}
