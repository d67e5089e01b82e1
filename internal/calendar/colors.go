package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

const (
	darkTextColor  = "#0f172a"
	lightTextColor = "#ffffff"

	// 色表中找不到 pair 同伴时的兜底颜色
	fallbackPairColor = "#c2068a"
)

// staffColorPalette 是按员工列表顺序循环取色的固定色板
var staffColorPalette = []string{
	"#0EA5E9", "#F97316", "#22C55E", "#EC4899",
	"#6366F1", "#EAB308", "#14B8A6", "#8B5CF6",
	"#F87171", "#3B82F6", "#C026D3", "#10B981",
}

// StringToColor 把任意字符串映射为确定性的 #rrggbb 颜色。
// 哈希按 32 位有符号整数溢出折叠，保证与前端历史数据中的取色一致。
func StringToColor(value string) string {
	var hash int32
	for _, r := range value {
		hash = int32(r) + (hash<<5 - hash)
	}

	var sb strings.Builder
	sb.WriteByte('#')
	for i := 0; i < 3; i++ {
		component := (hash >> (i * 8)) & 0xff
		sb.WriteString(fmt.Sprintf("%02x", component))
	}
	return sb.String()
}

// ReadableTextColor 根据背景色的感知亮度选择深色或浅色前景。
// 少于 6 位十六进制的非法输入一律返回深色。
func ReadableTextColor(hex string) string {
	sanitized := strings.TrimPrefix(hex, "#")
	if len(sanitized) < 6 {
		return darkTextColor
	}

	r, errR := strconv.ParseInt(sanitized[0:2], 16, 32)
	g, errG := strconv.ParseInt(sanitized[2:4], 16, 32)
	b, errB := strconv.ParseInt(sanitized[4:6], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return darkTextColor
	}

	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.65 {
		return darkTextColor
	}
	return lightTextColor
}

// StaffColorMap 按列表顺序给每个员工分配色板颜色，列表顺序变化时颜色也会变化
func StaffColorMap(staffs []domain.Staff) map[string]string {
	m := make(map[string]string, len(staffs))
	for i, staff := range staffs {
		m[staff.ID] = staffColorPalette[i%len(staffColorPalette)]
	}
	return m
}
