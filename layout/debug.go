package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteDebugJSON 把布局结果写成缩进 JSON（坐标单位 mm），便于核对分页与定位。
func WriteDebugJSON(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("布局结果为空")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
