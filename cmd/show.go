package cmd

import (
	"github.com/spf13/cobra"

	markdownrenderer "github.com/ByLCY/brief/renderer/markdown"
)

var (
	showWidth int
	showStyle string
)

var showCmd = &cobra.Command{
	Use:   "show [file.brief]",
	Short: "在终端中显示简报",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) > 0 {
			input = args[0]
		}
		doc, _, err := loadDocument(input)
		if err != nil {
			return err
		}

		width, style := cfg.Output.Width, cfg.Output.Style
		if cmd.Flags().Changed("width") {
			width = showWidth
		}
		if showStyle != "" {
			style = showStyle
		}
		term := markdownrenderer.NewTerminal(markdownrenderer.New(logger), width, style)
		out, err := term.RenderTree(renderTree(doc))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	showCmd.Flags().IntVarP(&showWidth, "width", "w", 0, "换行宽度（列）")
	showCmd.Flags().StringVar(&showStyle, "style", "", "glamour 样式：dark、light、notty 等")

	rootCmd.AddCommand(showCmd)
}
