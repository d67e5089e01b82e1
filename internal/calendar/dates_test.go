package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateDays(t *testing.T) {
	days := EnumerateDays("05.10.2025", "07.10.2025", OffDayLayout)
	assert.Equal(t, []string{"2025-10-05", "2025-10-06", "2025-10-07"}, days)

	// 单日区间也算一天
	assert.Equal(t, []string{"2025-10-05"}, EnumerateDays("05.10.2025", "05.10.2025", OffDayLayout))

	// 起点晚于终点时为空
	assert.Nil(t, EnumerateDays("07.10.2025", "05.10.2025", OffDayLayout))

	// 任一边界非法时整体失败
	assert.Nil(t, EnumerateDays("garbage", "07.10.2025", OffDayLayout))
	assert.Nil(t, EnumerateDays("05.10.2025", "garbage", OffDayLayout))
}

func TestValidDays(t *testing.T) {
	days := ValidDays(octDay(29, 13, 30), octDay(31, 8, 0))
	assert.Equal(t, []string{"2025-10-29", "2025-10-30", "2025-10-31"}, days)

	assert.Nil(t, ValidDays(time.Time{}, octDay(31, 0, 0)))
	assert.Nil(t, ValidDays(octDay(1, 0, 0), time.Time{}))
}

func TestNormalizeOffDay(t *testing.T) {
	assert.Equal(t, "2025-10-04", NormalizeOffDay("04.10.2025"))
	assert.Equal(t, "", NormalizeOffDay("2025-10-04"))
	assert.Equal(t, "", NormalizeOffDay(""))
}

func TestParseDayClock(t *testing.T) {
	parsed, err := ParseDayClock("2025-10-05", "08:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 5, 8, 30, 0, 0, time.UTC), parsed)

	_, err = ParseDayClock("2025-10-05", "25:00")
	assert.Error(t, err)

	_, err = ParseDayClock("", "08:30")
	assert.Error(t, err)
}
