package glyph

// 内置图标：24×24 网格上的线框路径，渲染时以描边方式绘制。
var builtinGlyphs = []Glyph{
	{Name: "target", Symbol: "◎", Path: "M12 2a10 10 0 0 0 0 20a10 10 0 0 0 0-20z M12 6a6 6 0 0 0 0 12a6 6 0 0 0 0-12z M12 10a2 2 0 0 0 0 4a2 2 0 0 0 0-4z"},
	{Name: "database", Symbol: "⛁", Path: "M3 5a9 3 0 0 0 18 0a9 3 0 0 0-18 0z M3 5v14a9 3 0 0 0 18 0V5 M3 12a9 3 0 0 0 18 0"},
	{Name: "file-text", Symbol: "▤", Path: "M14 2H6a2 2 0 0 0-2 2v16a2 2 0 0 0 2 2h12a2 2 0 0 0 2-2V8z M14 2v6h6 M16 13H8 M16 17H8 M10 9H8"},
	{Name: "alert-triangle", Symbol: "⚠", Path: "M10.3 3.9L1.8 18a2 2 0 0 0 1.7 3h17a2 2 0 0 0 1.7-3L13.7 3.9a2 2 0 0 0-3.4 0z M12 9v4 M12 17h.01"},
	{Name: "settings", Symbol: "⚙", Path: "M12 9a3 3 0 0 0 0 6a3 3 0 0 0 0-6z M12 1v4 M12 19v4 M4.2 4.2l2.9 2.9 M16.9 16.9l2.9 2.9 M1 12h4 M19 12h4 M4.2 19.8l2.9-2.9 M16.9 7.1l2.9-2.9"},
	{Name: "check-circle", Symbol: "✔", Path: "M22 11.1V12a10 10 0 1 1-5.9-9.1 M22 4L12 14l-3-3"},
	{Name: "circle", Symbol: "○", Path: "M12 2a10 10 0 0 0 0 20a10 10 0 0 0 0-20z"},
	{Name: "bar-chart-3", Symbol: "▮", Path: "M3 3v18h18 M18 17V9 M13 17V5 M8 17v-3"},
	{Name: "download", Symbol: "⤓", Path: "M21 15v4a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2v-4 M7 10l5 5l5-5 M12 15V3"},
	{Name: "refresh-cw", Symbol: "⟳", Path: "M3 12a9 9 0 0 1 15-6.7L21 8 M21 3v5h-5 M21 12a9 9 0 0 1-15 6.7L3 16 M8 16H3v5"},
	{Name: "shield", Symbol: "⛨", Path: "M12 22s8-4 8-10V5l-8-3l-8 3v7c0 6 8 10 8 10z"},
	{Name: "clock", Symbol: "◷", Path: "M12 2a10 10 0 0 0 0 20a10 10 0 0 0 0-20z M12 6v6l4 2"},
	{Name: "hard-drive", Symbol: "▭", Path: "M22 12H2 M5.5 5.1L2 12v6a2 2 0 0 0 2 2h16a2 2 0 0 0 2-2v-6l-3.5-6.9A2 2 0 0 0 16.8 4H7.2a2 2 0 0 0-1.7 1.1z M6 16h.01 M10 16h.01"},
	{Name: "package", Symbol: "▣", Path: "M16.5 9.4L7.5 4.2 M21 16V8a2 2 0 0 0-1-1.7l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.7l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16z M3.3 7L12 12l8.7-5 M12 22V12"},
}

// Builtin returns the icon set used by the bundled briefs.
func Builtin() *Set { return NewSet(builtinGlyphs...) }
