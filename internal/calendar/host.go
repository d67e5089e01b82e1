package calendar

import (
	"time"
)

type NavDirection string

const (
	NavPrev NavDirection = "prev"
	NavNext NavDirection = "next"
)

// Host 是宿主环境能力接口，破坏性命令的确认、外呼邮件与翻页控制都经由它，
// 使核心逻辑可以脱离宿主环境测试
type Host interface {
	// Confirm 弹出同步确认框，返回用户是否同意
	Confirm(message string) bool
	// ComposeMail 把 mailto 目标交给宿主的默认邮件客户端，不观察结果
	ComposeMail(target string)
	// SetNavigationEnabled 启用或禁用日历某个方向的翻页按钮
	SetNavigationEnabled(direction NavDirection, enabled bool)
}

// NavState 记录一次可见区间回调后的翻页可用性
type NavState struct {
	PrevEnabled bool `json:"prevEnabled"`
	NextEnabled bool `json:"nextEnabled"`
}

// HandleVisibleRange 在日历可见区间变化时裁决翻页按钮：
// 允许越出有效窗口约一个月，再往外则禁用对应方向。
func (s *State) HandleVisibleRange(visibleStart, visibleEnd time.Time, host Host) NavState {
	nav := NavState{PrevEnabled: true, NextEnabled: true}
	if s.Schedule == nil || s.Schedule.ScheduleStartDate.IsZero() || s.Schedule.ScheduleEndDate.IsZero() {
		return nav
	}

	startDiff := daysBetween(s.Schedule.ScheduleStartDate.AddDate(0, 0, -1), visibleStart)
	endDiff := daysBetween(visibleEnd, s.Schedule.ScheduleEndDate)

	if startDiff < 0 && startDiff > -35 {
		nav.PrevEnabled = false
	}
	if endDiff < 0 && endDiff > -32 {
		nav.NextEnabled = false
	}

	if host != nil {
		host.SetNavigationEnabled(NavPrev, nav.PrevEnabled)
		host.SetNavigationEnabled(NavNext, nav.NextEnabled)
	}
	return nav
}

func daysBetween(from, to time.Time) int {
	return int(truncateToDay(to).Sub(truncateToDay(from)).Hours() / 24)
}
