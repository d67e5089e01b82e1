package calendar

import (
	"time"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

// octDay 构造 2025 年 10 月的某个时间点，测试数据统一使用 UTC
func octDay(day, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.UTC)
}

// testSchedule 构造一份覆盖所有推导分支的排班表：
// 休息日、重叠的 pair 区间、夜班和空档日
func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:                1,
		Name:              "Ekim 2025 Vardiya Planı",
		ScheduleStartDate: octDay(1, 0, 0),
		ScheduleEndDate:   octDay(31, 0, 0),
		Staffs: []domain.Staff{
			{
				ID:      "staff-tuba",
				Name:    "Tuba",
				OffDays: []string{"04.10.2025", "11.10.2025"},
				PairList: []domain.PairRange{
					{StaffID: "staff-ayse", StartDate: "05.10.2025", EndDate: "12.10.2025"},
					{StaffID: "staff-mehmet", StartDate: "08.10.2025", EndDate: "10.10.2025"},
				},
			},
			{ID: "staff-ayse", Name: "Ayşe Kaya"},
			{ID: "staff-mehmet", Name: "Mehmet Demir"},
		},
		Shifts: []domain.Shift{
			{ID: "shift-morning", Name: "Sabah Vardiyası", ShiftRule: "Haftada en fazla 5 sabah", ShiftStart: "08:00", ShiftEnd: "16:00"},
			{ID: "shift-night", Name: "Night Shift", ShiftRule: "night rotation", ShiftStart: "22:00", ShiftEnd: "23:59"},
		},
		Assignments: []domain.Assignment{
			{ID: "a1", StaffID: "staff-tuba", ShiftID: "shift-morning", ShiftStart: octDay(2, 8, 0), ShiftEnd: octDay(2, 16, 0)},
			{ID: "a2", StaffID: "staff-tuba", ShiftID: "shift-night", ShiftStart: octDay(3, 22, 0), ShiftEnd: octDay(3, 23, 59)},
			{ID: "a3", StaffID: "staff-ayse", ShiftID: "shift-morning", ShiftStart: octDay(2, 8, 0), ShiftEnd: octDay(2, 16, 0)},
		},
	}
}

// fakeHost 记录宿主能力调用，确认结果可以预置
type fakeHost struct {
	confirmed       bool
	confirmMessages []string
	mailTargets     []string
	nav             map[NavDirection]bool
}

func newFakeHost(confirmed bool) *fakeHost {
	return &fakeHost{confirmed: confirmed, nav: make(map[NavDirection]bool)}
}

func (f *fakeHost) Confirm(message string) bool {
	f.confirmMessages = append(f.confirmMessages, message)
	return f.confirmed
}

func (f *fakeHost) ComposeMail(target string) {
	f.mailTargets = append(f.mailTargets, target)
}

func (f *fakeHost) SetNavigationEnabled(direction NavDirection, enabled bool) {
	f.nav[direction] = enabled
}
