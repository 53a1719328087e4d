package renderer

import (
	"github.com/ByLCY/brief/layout"
	"github.com/ByLCY/brief/view"
)

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// TreeRenderer 直接消费展示树，用于不需要分页的输出（HTML、Markdown、终端）。
type TreeRenderer interface {
	RenderTree(root *view.Node) ([]byte, error)
}
