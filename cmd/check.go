package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/brief/document"
	"github.com/ByLCY/brief/dsl"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.brief>...",
	Short: "校验 .brief 文件",
	Long:  "解析并校验每个文件，逐条列出模型问题。任一文件无效时返回非零状态。",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			doc, err := dsl.LoadFile(path)
			if err == nil {
				fmt.Fprintln(out, success("%s：%d 个章节", path, doc.Len()))
				continue
			}
			failed++
			fmt.Fprintln(out, problem(path))
			var cfgErr *document.ConfigurationError
			if errors.As(err, &cfgErr) {
				for _, p := range cfgErr.Problems() {
					fmt.Fprintln(out, "  "+faintStyle.Render(p))
				}
				continue
			}
			fmt.Fprintln(out, "  "+faintStyle.Render(err.Error()))
		}
		if failed > 0 {
			return fmt.Errorf("%d 个文件未通过校验", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
