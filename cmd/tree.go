package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/brief/layout"
	"github.com/ByLCY/brief/view"
)

var (
	treeJSON   bool
	treeLayout bool
)

var treeCmd = &cobra.Command{
	Use:   "tree [file.brief]",
	Short: "输出显示树或布局结果",
	Long: `默认以缩进大纲输出显示树；--json 输出显示树 JSON；
--layout 输出分页后的布局 JSON（坐标单位 mm）。`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) > 0 {
			input = args[0]
		}
		doc, _, err := loadDocument(input)
		if err != nil {
			return err
		}
		root := renderTree(doc)
		out := cmd.OutOrStdout()

		switch {
		case treeLayout:
			p := &pipeline{cfg: cfg, baseDir: filepath.Dir(input), logger: logger}
			result, _, err := p.layoutPDF(root, doc.Meta())
			if err != nil {
				return err
			}
			return layout.WriteDebugJSON(out, result)
		case treeJSON:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(root)
		default:
			writeOutline(out, root, 0)
			return nil
		}
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "以 JSON 输出显示树")
	treeCmd.Flags().BoolVar(&treeLayout, "layout", false, "输出布局结果 JSON")
	treeCmd.MarkFlagsMutuallyExclusive("json", "layout")

	rootCmd.AddCommand(treeCmd)
}

// writeOutline 每个节点一行：kind[/role] 加上截断后的文字。
func writeOutline(w io.Writer, n *view.Node, depth int) {
	label := string(n.Kind)
	if n.Role != "" {
		label += "/" + string(n.Role)
	}
	if n.Glyph != nil {
		label += " " + n.Glyph.Symbol
	}
	text := n.Text
	if n.Label != "" {
		text = n.Label + ": " + text
	}
	if first, _, more := strings.Cut(text, "\n"); more {
		text = first + " …"
	}
	if len([]rune(text)) > 60 {
		text = string([]rune(text)[:59]) + "…"
	}
	if text != "" {
		label += "  " + faintStyle.Render(fmt.Sprintf("%q", text))
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label)
	for _, c := range n.Children {
		writeOutline(w, c, depth+1)
	}
}
