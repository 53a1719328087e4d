package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体，来自 Go 字体家族（golang.org/x/image/font/gofont）。
var builtin = map[string][]byte{
	"go-regular":   goregular.TTF,
	"go-medium":    gomedium.TTF,
	"go-bold":      gobold.TTF,
	"go-mono":      gomono.TTF,
	"go-mono-bold": gomonobold.TTF,
}

// Default 为找不到字体时使用的回退字体。
const Default = "go-regular"

// Load 返回内置字体的字节数据，name 可写为 "embed:go-bold" 或直接 "go-bold"。
func Load(name string) ([]byte, error) {
	key := strings.TrimPrefix(strings.TrimSpace(name), "embed:")
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体（可选：%s）", key, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回排序后的内置字体名。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
