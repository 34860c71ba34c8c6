package cmd

import (
	"fmt"
	"log/slog"

	"spacemetrics/internal/flatten"
	"spacemetrics/internal/halstead"
	"spacemetrics/internal/loader"
	"spacemetrics/internal/report"

	"github.com/spf13/cobra"
)

// newHalsteadCmd 创建 halstead 子命令。
// 先输出方法级 Halstead 记录，再按首次出现顺序输出每个类的汇总与故障预测分。
func newHalsteadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "halstead <filename>",
		Short: "输出方法级 Halstead 指标以及类级故障预测",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()

			document, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("report loaded", slog.String("path", args[0]), slog.Int("spaces", len(document.Spaces)))

			records, err := flatten.Halstead(document)
			if err != nil {
				return fmt.Errorf("flatten %s: %w", args[0], err)
			}

			totals := halstead.Aggregate(records)
			classes, err := totals.Reports()
			if err != nil {
				return err
			}
			a.logger.Debug("classes aggregated", slog.Int("records", len(records)), slog.Int("classes", totals.Len()))

			output := &report.Output{}
			if err := report.Append(output, records); err != nil {
				return err
			}
			if err := report.Append(output, classes); err != nil {
				return err
			}
			return a.emit(cmd, cfg, output)
		},
	}
}
