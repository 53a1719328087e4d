package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626")).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// success 格式化一行成功状态，例如 "✓ 已生成 PDF：out/brief.pdf"。
func success(format string, args ...any) string {
	return okStyle.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// problem 格式化一条校验问题。
func problem(msg string) string {
	return errorStyle.Render("✗") + " " + msg
}
