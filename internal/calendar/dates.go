package calendar

import (
	"time"
)

const (
	// DayKeyLayout 是内部统一使用的日期键格式
	DayKeyLayout = "2006-01-02"
	// OffDayLayout 是远端排班表中休息日和 pair 区间使用的格式
	OffDayLayout = "02.01.2006"
	// ClockLayout 是表单中时刻字段使用的格式
	ClockLayout = "15:04"
	// DisplayDateLayout 是展示给用户的日期格式
	DisplayDateLayout = "02 January 2006"
)

// DayKey 把时间归一化为 YYYY-MM-DD 键
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// EnumerateDays 枚举 [start, end] 闭区间内的每一天，输出 YYYY-MM-DD。
// 任一边界无法按 layout 解析时返回 nil。
func EnumerateDays(start, end, layout string) []string {
	startDate, err := time.Parse(layout, start)
	if err != nil {
		return nil
	}
	endDate, err := time.Parse(layout, end)
	if err != nil {
		return nil
	}

	var days []string
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayKeyLayout))
	}
	return days
}

// ValidDays 枚举排班表有效窗口内的每一天
func ValidDays(start, end time.Time) []string {
	if start.IsZero() || end.IsZero() {
		return nil
	}

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)

	var days []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DayKeyLayout))
	}
	return days
}

// NormalizeOffDay 把 DD.MM.YYYY 的休息日转换为日期键，无法解析时返回空串
func NormalizeOffDay(offDay string) string {
	d, err := time.Parse(OffDayLayout, offDay)
	if err != nil {
		return ""
	}
	return d.Format(DayKeyLayout)
}

// ParseDayClock 把 YYYY-MM-DD 的日期和 HH:mm 的时刻组合为一个时间点
func ParseDayClock(day, clock string) (time.Time, error) {
	return time.Parse(DayKeyLayout+"T"+ClockLayout, day+"T"+clock)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func makeSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
