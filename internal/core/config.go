package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RecoveryAshes/WebsiteChecker/internal/crawlers"
	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/RecoveryAshes/WebsiteChecker/internal/utils"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀,如 WEBSITECHECKER_HTTP_TIMEOUT
const EnvPrefix = "WEBSITECHECKER"

// Config 应用程序配置
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Resource ResourceConfig `mapstructure:"resource"`
	Output   OutputConfig   `mapstructure:"output"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"` // 为空时只输出到终端
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// HTTPConfig 请求配置
type HTTPConfig struct {
	Timeout     int    `mapstructure:"timeout"`       // 秒,0表示不限制
	MaxBodySize int    `mapstructure:"max_body_size"` // 字节,0表示不限制
	HeadersFile string `mapstructure:"headers_file"`
}

// ResourceConfig 资源采样配置
type ResourceConfig struct {
	DiskPath    string `mapstructure:"disk_path"`
	CPUInterval int    `mapstructure:"cpu_interval"` // 毫秒
}

// OutputConfig 终端输出配置
type OutputConfig struct {
	Progress bool `mapstructure:"progress"` // 终端交互时显示spinner和进度条
}

// LoadConfig 加载配置文件
// configPath为空时搜索默认位置,找不到文件则使用默认值
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".websitechecker"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &models.ConfigError{
				FilePath: configPath,
				Cause:    fmt.Errorf("读取配置文件失败: %w", err),
			}
		}
	} else {
		utils.Debugf("使用配置文件: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &models.ConfigError{
			FilePath: v.ConfigFileUsed(),
			Cause:    fmt.Errorf("解析配置文件失败: %w", err),
		}
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.log_dir", "")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	v.SetDefault("http.timeout", 0)
	v.SetDefault("http.max_body_size", 0)
	v.SetDefault("http.headers_file", "")

	v.SetDefault("resource.disk_path", crawlers.DefaultDiskPath)
	v.SetDefault("resource.cpu_interval", 0)

	v.SetDefault("output.progress", true)
}

// LogConfig 转换为日志初始化参数
func (c *Config) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      c.Logging.Level,
		LogDir:     c.Logging.LogDir,
		MaxSize:    c.Logging.Rotation.MaxSize,
		MaxBackups: c.Logging.Rotation.MaxBackups,
		MaxAge:     c.Logging.Rotation.MaxAge,
		Compress:   c.Logging.Rotation.Compress,
	}
}

// FetcherConfig 转换为请求配置
func (c *Config) FetcherConfig() crawlers.FetcherConfig {
	timeout := time.Duration(c.HTTP.Timeout) * time.Second
	if timeout < 0 {
		timeout = 0
	}
	return crawlers.FetcherConfig{
		Timeout:     timeout,
		MaxBodySize: c.HTTP.MaxBodySize,
	}
}

// ResourceMonitorConfig 转换为资源采样配置
func (c *Config) ResourceMonitorConfig() crawlers.ResourceMonitorConfig {
	return crawlers.ResourceMonitorConfig{
		DiskPath:    c.Resource.DiskPath,
		CPUInterval: time.Duration(c.Resource.CPUInterval) * time.Millisecond,
	}
}

// MergeCLIFlags 合并命令行参数到配置
// 命令行参数优先于配置文件
func (c *Config) MergeCLIFlags(verbose bool, logLevel, headersFile string) {
	if verbose {
		c.Logging.Level = "debug"
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if headersFile != "" {
		c.HTTP.HeadersFile = headersFile
	}
}
