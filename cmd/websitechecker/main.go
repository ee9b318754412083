package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/WebsiteChecker/internal/config"
	"github.com/RecoveryAshes/WebsiteChecker/internal/core"
	"github.com/RecoveryAshes/WebsiteChecker/internal/crawlers"
	"github.com/RecoveryAshes/WebsiteChecker/internal/models"
	"github.com/RecoveryAshes/WebsiteChecker/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 退出码
const (
	exitOK      = 0
	exitUsage   = 1
	exitFetch   = 2
	exitFailure = 3
)

// cliFlags 命令行参数
type cliFlags struct {
	// 全局参数
	configFile  string
	verbose     bool
	logLevel    string
	headers     []string
	headersFile string

	// 检查参数
	link      bool
	picture   bool
	detailed  bool
	savePath  string
	stats     bool
	resources bool
}

// usageError 参数错误,退出码1
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// app 一次命令执行的共享状态
type app struct {
	flags   cliFlags
	options models.Options
	config  *core.Config
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "websitechecker <url>",
		Short: "统计网页中的可点击链接或图片",
		Long: `WebsiteChecker - 单页面链接/图片统计工具

获取一个网页,统计其中的 <a href> 链接或 <img src> 图片,支持:
  • 明细列表 (-d)
  • 去重后的绝对链接 / 图片大小 (--stats)
  • 保存报告到文件 (-s)
  • 获取前后的主机资源快照 (-r)
  • 自定义HTTP请求头

示例:
  websitechecker https://example.com
  websitechecker https://example.com -p -d --stats
  websitechecker https://example.com -l -s report.txt -H "User-Agent: MyBot/1.0"

版本: ` + Version + `
构建时间: ` + BuildTime,
		Version:       Version,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 检查参数先于加载配置,配置文件损坏时仍能报告模式冲突
			if !cmd.HasParent() {
				if err := a.validate(args[0]); err != nil {
					return err
				}
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.check(cmd.Context())
		},
	}

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.flags.configFile, "config", "c", "", "配置文件路径")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "详细输出模式")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")
	pf.StringArrayVarP(&a.flags.headers, "header", "H", []string{}, "自定义HTTP头部,格式: 'Name: Value',可多次指定")
	pf.StringVar(&a.flags.headersFile, "headers-file", "", "HTTP头部配置文件 (默认 configs/headers.yaml)")

	f := rootCmd.Flags()
	f.BoolVarP(&a.flags.link, "link", "l", false, "统计可点击链接 (默认)")
	f.BoolVarP(&a.flags.picture, "picture", "p", false, "统计图片")
	f.BoolVarP(&a.flags.detailed, "detailed", "d", false, "输出明细列表")
	f.StringVarP(&a.flags.savePath, "save", "s", "", "保存报告到文件 (覆盖)")
	f.BoolVar(&a.flags.stats, "stats", false, "链接: 输出去重后的绝对URL; 图片: 获取每张图片大小")
	f.BoolVarP(&a.flags.resources, "ressources", "r", false, "输出获取前后的资源使用情况")

	rootCmd.AddCommand(newVersionCmd(a), newInitHeadersCmd(a))
	return rootCmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "WebsiteChecker %s\n", Version)
			fmt.Fprintf(a.stdout, "构建时间: %s\n", BuildTime)
		},
	}
}

func newInitHeadersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-headers [path]",
		Short: "生成HTTP头部配置模板",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.config.HTTP.HeadersFile
			if len(args) == 1 {
				path = args[0]
			}

			loader := config.NewHeaderConfigLoader(path)
			created, err := loader.EnsureConfigExists()
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(a.stdout, "已生成头部配置模板: %s\n", loader.Path())
			} else {
				fmt.Fprintf(a.stdout, "配置文件已存在: %s\n", loader.Path())
			}
			return nil
		},
	}
}

// usageArgs 将位置参数错误标记为参数错误
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// setup 加载配置并初始化日志
func (a *app) setup() error {
	cfg, err := core.LoadConfig(a.flags.configFile)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	cfg.MergeCLIFlags(a.flags.verbose, a.flags.logLevel, a.flags.headersFile)
	a.config = cfg

	logConfig := cfg.LogConfig()
	logConfig.Console = a.stderr
	logConfig.RunID = models.NewRunID()
	if err := utils.InitLogger(logConfig); err != nil {
		return fmt.Errorf("初始化日志系统失败: %w", err)
	}

	if a.flags.verbose {
		utils.Info("详细模式已启用")
	}
	return nil
}

// validate 验证检查参数,模式冲突时输出提示
func (a *app) validate(targetURL string) error {
	options, err := ValidateFlags(targetURL, a.flags)
	if err != nil {
		var conflict *models.ModeConflictError
		if errors.As(err, &conflict) {
			utils.NewReporter(a.stdout).ModeConflict()
		}
		return &usageError{err: err}
	}
	a.options = options
	return nil
}

// check 执行单页面检查
func (a *app) check(ctx context.Context) error {
	options := a.options

	headerManager, err := core.NewHeaderManager(a.config.HTTP.HeadersFile, a.flags.headers)
	if err != nil {
		return &usageError{err: fmt.Errorf("创建HTTP头部管理器失败: %w", err)}
	}
	// 在发出任何请求前加载并验证头部
	if _, err := headerManager.GetHeaders(); err != nil {
		return err
	}
	utils.Debugf("HTTP头部: %v", headerManager.GetSafeHeaders())

	fetcherConfig := a.config.FetcherConfig()

	var prober core.ImageProber
	if options.Stats && options.Mode == models.ModeImages {
		prober = crawlers.NewImageProber(fetcherConfig, headerManager)
	}

	var monitor core.ResourceSampler
	if options.Resources {
		monitor = crawlers.NewResourceMonitor(a.config.ResourceMonitorConfig())
	}

	checker := core.NewChecker(options,
		crawlers.NewPageFetcher(fetcherConfig, headerManager),
		prober, monitor, a.stdout)

	if a.config.Output.Progress {
		if f, ok := a.stderr.(*os.File); ok && utils.IsTerminal(f) {
			checker.SetProgressWriter(a.stderr)
		}
	}

	_, err = checker.Run(ctx)
	return err
}

// exitCode 根据错误类型选择退出码
func exitCode(err error) int {
	var (
		uErr *usageError
		vErr *models.ValidationError
		fErr *models.FetchError
	)

	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &uErr), errors.As(err, &vErr):
		return exitUsage
	case errors.As(err, &fErr):
		return exitFetch
	default:
		return exitFailure
	}
}

// run 执行命令并返回退出码
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	code := exitCode(err)

	var (
		conflict *models.ModeConflictError
		fErr     *models.FetchError
	)
	// 模式冲突和获取失败已输出到标准输出
	if err != nil && !errors.As(err, &conflict) && !errors.As(err, &fErr) {
		fmt.Fprintf(stderr, "错误: %v\n", err)
		if code == exitUsage {
			fmt.Fprintln(stderr, "使用 --help 查看用法")
		}
	}
	return code
}

func main() {
	// Ctrl+C 取消进行中的请求
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
