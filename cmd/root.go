// Package cmd 提供 spacemetrics 的命令行入口与子命令编排。
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"spacemetrics/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app 保存所有子命令共享的配置源与日志器。
type app struct {
	settings *viper.Viper
	logger   *slog.Logger
}

// config 是从 flag / 环境变量 / 配置文件合并后的运行参数。
type config struct {
	output  string
	verbose bool
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// 每次调用都使用独立的 viper 实例，测试之间互不影响。
func newRootCmd(version string) *cobra.Command {
	a := &app{
		settings: viper.New(),
		logger:   newLogger(io.Discard, false),
	}

	rootCmd := &cobra.Command{
		Use:   "spacemetrics",
		Short: "把 space 度量树展开为方法级记录",
		Long: "spacemetrics 读取静态分析工具输出的嵌套 space 度量 JSON，\n" +
			"输出方法级扁平记录，并可按类聚合 Halstead 指标计算故障预测分。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfigFile(a.settings); err != nil {
				return err
			}
			a.logger = newLogger(cmd.ErrOrStderr(), a.config().verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("output", "", "同时将记录导出到该文件")
	rootCmd.PersistentFlags().Bool("verbose", false, "在 stderr 输出调试日志")

	// 绑定 flag，并支持 SPACEMETRICS_OUTPUT / SPACEMETRICS_VERBOSE 环境变量。
	_ = a.settings.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = a.settings.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	a.settings.SetEnvPrefix("SPACEMETRICS")
	a.settings.AutomaticEnv()

	a.settings.SetConfigName(".spacemetrics")
	a.settings.SetConfigType("yaml")
	a.settings.AddConfigPath(".")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newKindsCmd())
	rootCmd.AddCommand(newQueryCmd(a))
	rootCmd.AddCommand(newHalsteadCmd(a))

	return rootCmd
}

// readConfigFile 读取可选的 .spacemetrics.yaml，文件不存在不算错误。
func readConfigFile(settings *viper.Viper) error {
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// newLogger 创建写往 stderr 的文本日志器，verbose 时开启 debug 级别。
func newLogger(writer io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

func (a *app) config() config {
	return config{
		output:  strings.TrimSpace(a.settings.GetString("output")),
		verbose: a.settings.GetBool("verbose"),
	}
}

// emit 先按需导出文件，再把缓存的输出一次性写到 stdout。
// 导出失败时 stdout 保持为空，整次运行要么全部输出要么什么都不输出。
func (a *app) emit(cmd *cobra.Command, cfg config, output *report.Output) error {
	if cfg.output != "" {
		if err := output.WriteFile(cfg.output); err != nil {
			return err
		}
		a.logger.Info("records exported", slog.String("path", cfg.output))
	}

	if err := output.Flush(cmd.OutOrStdout()); err != nil {
		return err
	}

	if cfg.output != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "records exported to %s\n", cfg.output)
	}
	return nil
}
