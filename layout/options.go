package layout

// BuildOptions 配置布局阶段所需的依赖，例如排版后端与主题。
type BuildOptions struct {
	Typesetter Typesetter
	Theme      *Theme       // 为空时使用 DefaultTheme()
	Meta       DocumentMeta // 原样写入 Result.Meta
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// fontSize 与 lineHeight 均为毫米。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontResource, fontSize float64, lineHeight float64, wrap string) ([]TextLine, error)
}
