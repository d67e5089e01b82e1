package calendar

import (
	"testing"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStringToColor(t *testing.T) {
	color := StringToColor("staff-tuba-shift-morning")

	// 同一输入永远得到同一颜色
	assert.Equal(t, color, StringToColor("staff-tuba-shift-morning"))
	assert.Len(t, color, 7)
	assert.Equal(t, byte('#'), color[0])

	// 不同输入几乎总是得到不同颜色
	assert.NotEqual(t, color, StringToColor("staff-ayse-shift-morning"))

	// 空串哈希为 0
	assert.Equal(t, "#000000", StringToColor(""))
}

func TestReadableTextColor(t *testing.T) {
	// 亮背景配深色前景
	assert.Equal(t, "#0f172a", ReadableTextColor("#ffffff"))
	assert.Equal(t, "#0f172a", ReadableTextColor("#EAB308"))

	// 暗背景配浅色前景
	assert.Equal(t, "#ffffff", ReadableTextColor("#000000"))
	assert.Equal(t, "#ffffff", ReadableTextColor("#6366F1"))

	// 非法输入一律返回深色
	assert.Equal(t, "#0f172a", ReadableTextColor("#fff"))
	assert.Equal(t, "#0f172a", ReadableTextColor("#zzzzzz"))
	assert.Equal(t, "#0f172a", ReadableTextColor(""))
}

func TestStaffColorMap(t *testing.T) {
	staffs := []domain.Staff{
		{ID: "s1"}, {ID: "s2"}, {ID: "s3"},
	}

	m := StaffColorMap(staffs)
	assert.Equal(t, staffColorPalette[0], m["s1"])
	assert.Equal(t, staffColorPalette[1], m["s2"])
	assert.Equal(t, staffColorPalette[2], m["s3"])

	// 超出色板长度后循环取色
	many := make([]domain.Staff, len(staffColorPalette)+1)
	for i := range many {
		many[i] = domain.Staff{ID: string(rune('a' + i))}
	}
	mm := StaffColorMap(many)
	assert.Equal(t, staffColorPalette[0], mm[many[len(staffColorPalette)].ID])
}
