package main

import (
	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
)

// ValidateFlags 验证命令行标志并构建运行参数
// 只做本地检查,不发起任何请求;URL本身的问题由页面获取阶段报告
func ValidateFlags(targetURL string, flags cliFlags) (models.Options, error) {
	options, err := models.NewOptions(targetURL, flags.link, flags.picture)
	if err != nil {
		return options, err
	}

	options.Detailed = flags.detailed
	options.Stats = flags.stats
	options.SavePath = flags.savePath
	options.Resources = flags.resources

	return options, nil
}
