package cmd

import (
	"fmt"
	"log/slog"

	"spacemetrics/internal/flatten"
	"spacemetrics/internal/loader"
	"spacemetrics/internal/report"

	"github.com/spf13/cobra"
)

// newQueryCmd 创建 query 子命令。
// 示例：
//
//	spacemetrics query metrics.json
func newQueryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "query <filename>",
		Short: "输出每个函数的行数、注释行数与圈复杂度",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config()

			document, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("report loaded", slog.String("path", args[0]), slog.Int("spaces", len(document.Spaces)))

			records, err := flatten.Methods(document)
			if err != nil {
				return fmt.Errorf("flatten %s: %w", args[0], err)
			}
			a.logger.Debug("spaces flattened", slog.Int("records", len(records)))

			output := &report.Output{}
			if err := report.Append(output, records); err != nil {
				return err
			}
			return a.emit(cmd, cfg, output)
		},
	}
}
