package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/brief/config"
)

var (
	renderFormat string
	renderOut    string
	renderDebug  string
)

var renderCmd = &cobra.Command{
	Use:   "render [file.brief]",
	Short: "渲染为 PDF、HTML 或 Markdown",
	Long: `渲染简报并写入文件。未给出文件时渲染内置的 Phase 1 简报。

输出格式默认取配置 output.format（pdf）。--out 缺省时写到
output.dir/<文件名>.<格式>。`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "输出格式：pdf、html 或 md（默认取配置）")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "输出路径")
	renderCmd.Flags().StringVar(&renderDebug, "debug", "", "布局调试 JSON 输出路径（仅 pdf）")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	}
	// flag > config
	format := renderFormat
	if format == "" {
		format = cfg.Output.Format
	}
	if renderDebug != "" && format != config.FormatPDF {
		return fmt.Errorf("--debug 仅适用于 pdf 格式，当前为 %s", format)
	}

	doc, name, err := loadDocument(input)
	if err != nil {
		return err
	}
	root := renderTree(doc)

	p := &pipeline{cfg: cfg, baseDir: filepath.Dir(input), logger: logger}
	var debug *bytes.Buffer
	if renderDebug != "" {
		debug = &bytes.Buffer{}
	}
	out, err := p.render(format, root, doc.Meta(), debug)
	if err != nil {
		return err
	}

	path := renderOut
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, name+"."+format)
	}
	if err := writeFile(path, out); err != nil {
		return err
	}
	if debug != nil {
		if err := writeFile(renderDebug, debug.Bytes()); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), success("已生成 %s：%s", format, path))
	return nil
}
