package utils

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
)

func TestHeaderValidator_ValidateName(t *testing.T) {
	validator := NewHeaderValidator()

	tests := []struct {
		name        string
		headerName  string
		expectError bool
	}{
		{"合法名称-字母", "User-Agent", false},
		{"合法名称-数字", "X-Request-ID-123", false},
		{"合法名称-单字符", "X", false},
		{"非法名称-空格", "User Agent", true},
		{"非法名称-下划线", "User_Agent", true},
		{"非法名称-特殊字符", "User@Agent", true},
		{"非法名称-空字符串", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName(tt.headerName)
			if (err != nil) != tt.expectError {
				t.Errorf("期望错误=%v, 实际错误=%v", tt.expectError, err)
			}
		})
	}
}

func TestHeaderValidator_ValidateValue(t *testing.T) {
	validator := NewHeaderValidator()

	tests := []struct {
		name        string
		headerValue string
		expectError bool
	}{
		{"合法值-ASCII", "Mozilla/5.0", false},
		{"合法值-空字符串", "", false},
		{"合法值-引号", `value "with" quotes`, false},
		{"合法值-最大长度", strings.Repeat("a", MaxHeaderValueLength), false},
		{"非法值-超长", strings.Repeat("a", MaxHeaderValueLength+1), true},
		{"非法值-控制字符", "value\x00with\x01null", true},
		{"非法值-中文", "测试中文", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateValue("X-Test", tt.headerValue)
			if (err != nil) != tt.expectError {
				t.Errorf("期望错误=%v, 实际错误=%v", tt.expectError, err)
			}
		})
	}
}

func TestHeaderValidator_IsForbidden(t *testing.T) {
	validator := NewHeaderValidator()

	for _, name := range []string{"Host", "host", "HOST", "Content-Length", "range"} {
		if !validator.IsForbidden(name) {
			t.Errorf("%s 应该被禁止", name)
		}
	}
	for _, name := range []string{"User-Agent", "X-Custom", "Accept"} {
		if validator.IsForbidden(name) {
			t.Errorf("%s 不应该被禁止", name)
		}
	}
}

func TestHeaderValidator_Validate(t *testing.T) {
	validator := NewHeaderValidator()

	t.Run("合法的http.Header", func(t *testing.T) {
		headers := http.Header{
			"User-Agent": []string{"Mozilla/5.0"},
			"Accept":     []string{"*/*"},
		}
		if err := validator.Validate(headers); err != nil {
			t.Errorf("期望无错误, 实际错误=%v", err)
		}
	})

	t.Run("包含禁止头部", func(t *testing.T) {
		headers := http.Header{
			"User-Agent": []string{"Mozilla/5.0"},
			"Host":       []string{"example.com"},
		}
		err := validator.Validate(headers)

		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("期望ValidationError, 得到 %v", err)
		}
		if vErr.HeaderName != "Host" {
			t.Errorf("HeaderName = %q, want Host", vErr.HeaderName)
		}
	})
}

func TestHeaderRedactor(t *testing.T) {
	redactor := NewHeaderRedactor()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"User-Agent", "CustomBot/1.0", "CustomBot/1.0"},
		{"Authorization", "Bearer secret-token-12345", "Bearer ***"},
		{"Authorization", "Basic dXNlcjpwYXNz", "Basic ***"},
		{"X-API-Key", "api-key-67890", "api-***7890"},
		{"Cookie", "short", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			if got := redactor.RedactHeaderValue(tt.name, tt.value); got != tt.want {
				t.Errorf("RedactHeaderValue() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("RedactToString按名称排序", func(t *testing.T) {
		headers := http.Header{
			"X-Token": []string{"Bearer abc"},
			"Accept":  []string{"*/*"},
		}
		want := "Accept: */*, X-Token: Bearer ***"
		if got := redactor.RedactToString(headers); got != want {
			t.Errorf("RedactToString() = %q, want %q", got, want)
		}
	})
}
