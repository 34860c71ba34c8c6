package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"spacemetrics/internal/flatten"
	"spacemetrics/internal/model"

	"github.com/spf13/cobra"
)

// newKindsCmd 创建 kinds 子命令。
// 命令用于展示展开器识别的 space 类型以及各命令输出的字段。
func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "展示识别的 space 类型与输出字段",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "KIND\tBEHAVIOR"); err != nil {
				return err
			}
			for _, item := range flatten.Kinds() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", item.Kind, item.Behavior); err != nil {
					return err
				}
			}

			outputs := []struct {
				name   string
				record any
			}{
				{name: "query", record: model.MethodRecord{}},
				{name: "halstead (method)", record: model.HalsteadRecord{}},
				{name: "halstead (class)", record: model.ClassReport{}},
			}

			if _, err := fmt.Fprintln(writer, "\nOUTPUT\tFIELDS"); err != nil {
				return err
			}
			for _, item := range outputs {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", item.name, strings.Join(model.FieldNames(item.record), ", ")); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
