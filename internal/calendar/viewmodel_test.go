package calendar

import (
	"testing"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveEvents(t *testing.T) {
	s := NewState(testSchedule())
	vm := Derive(s, octDay(1, 0, 0))

	assert.Equal(t, "Tuba", vm.SelectedStaffName)
	require.Len(t, vm.Events, 2)

	first := vm.Events[0]
	assert.Equal(t, "a1", first.ID)
	assert.Equal(t, "Sabah Vardiyası", first.Title)
	assert.Equal(t, StringToColor("staff-tuba-shift-morning"), first.BackgroundColor)
	assert.Equal(t, first.BackgroundColor, first.BorderColor)
	assert.Equal(t, ReadableTextColor(first.BackgroundColor), first.TextColor)
	assert.False(t, first.Updated)
	assert.False(t, first.OutOfRange)
	assert.Equal(t, "Tuba", first.StaffName)

	assert.True(t, vm.HasCalendarData)
}

func TestDeriveMarksLocalAndOutOfRange(t *testing.T) {
	schedule := testSchedule()
	// 窗口外的排班仍然渲染，但带越界标记
	schedule.Assignments = append(schedule.Assignments, domain.Assignment{
		ID: "a4", StaffID: "staff-tuba", ShiftID: "shift-morning",
		ShiftStart: octDay(31, 8, 0).AddDate(0, 0, 2),
		ShiftEnd:   octDay(31, 16, 0).AddDate(0, 0, 2),
	})

	s := NewState(schedule)
	require.True(t, s.CreateCustomAssignment("staff-tuba", "2025-10-10", "", "", ""))

	vm := Derive(s, octDay(1, 0, 0))
	require.Len(t, vm.Events, 4)

	byID := make(map[string]CalendarEvent)
	for _, event := range vm.Events {
		byID[event.ID] = event
	}

	assert.True(t, byID["a4"].OutOfRange)
	assert.False(t, byID["a4"].Updated)

	custom := byID[s.CustomAssignments[0].ID]
	assert.True(t, custom.Updated)
	assert.Equal(t, DefaultCustomTitle, custom.Title)
}

func TestDeriveSelectedFlag(t *testing.T) {
	s := NewState(testSchedule())
	s.ToggleMultiSelect()
	s.ClickEvent("a2")

	vm := Derive(s, octDay(1, 0, 0))
	for _, event := range vm.Events {
		assert.Equal(t, event.ID == "a2", event.Selected)
	}
	assert.True(t, vm.CanDeleteSelected)
}

func TestDeriveOffDays(t *testing.T) {
	s := NewState(testSchedule())
	vm := Derive(s, octDay(1, 0, 0))
	assert.Equal(t, []string{"2025-10-04", "2025-10-11"}, vm.OffDays)
}

func TestDerivePairHighlightsOverlap(t *testing.T) {
	s := NewState(testSchedule())
	vm := Derive(s, octDay(1, 0, 0))

	// 区间外没有高亮
	_, ok := vm.PairHighlights["2025-10-04"]
	assert.False(t, ok)

	// 05–12 与 Ayşe 配对
	seven := vm.PairHighlights["2025-10-07"]
	assert.Equal(t, "Ayşe Kaya", seven.PartnerName)
	assert.Equal(t, staffColorPalette[1], seven.Color)

	// 08–10 的重叠区间以后处理的为准
	eight := vm.PairHighlights["2025-10-08"]
	assert.Equal(t, "Mehmet Demir", eight.PartnerName)
	assert.Equal(t, staffColorPalette[2], eight.Color)

	// 重叠结束后回到前一个区间
	eleven := vm.PairHighlights["2025-10-11"]
	assert.Equal(t, "Ayşe Kaya", eleven.PartnerName)
}

func TestDerivePairFallbacks(t *testing.T) {
	schedule := testSchedule()
	schedule.Staffs[0].PairList = []domain.PairRange{
		{StaffID: "staff-ghost", StartDate: "05.10.2025", EndDate: "05.10.2025"},
	}

	s := NewState(schedule)
	vm := Derive(s, octDay(1, 0, 0))

	ghost := vm.PairHighlights["2025-10-05"]
	assert.Equal(t, placeholderPairName, ghost.PartnerName)
	assert.Equal(t, fallbackPairColor, ghost.Color)
}

func TestDeriveMetricsRounding(t *testing.T) {
	schedule := testSchedule()
	schedule.Assignments = []domain.Assignment{
		{ID: "m1", StaffID: "staff-tuba", ShiftID: "shift-morning", ShiftStart: octDay(2, 8, 0), ShiftEnd: octDay(2, 10, 30)},
		{ID: "m2", StaffID: "staff-tuba", ShiftID: "shift-morning", ShiftStart: octDay(3, 8, 0), ShiftEnd: octDay(3, 11, 15)},
	}

	s := NewState(schedule)
	vm := Derive(s, octDay(1, 0, 0))

	assert.Equal(t, 2, vm.Metrics.TotalShifts)
	// 2.5 + 3.25 小时四舍五入到一位小数
	assert.Equal(t, 5.8, vm.Metrics.WorkedHours)
	assert.Equal(t, 0, vm.Metrics.NightShifts)
	assert.Equal(t, 0, vm.Metrics.UpdatedShifts)
}

func TestDeriveMetricsNightShifts(t *testing.T) {
	schedule := testSchedule()
	schedule.Assignments = []domain.Assignment{
		// 晚于 18 点开始
		{ID: "n1", StaffID: "staff-tuba", ShiftID: "shift-morning", ShiftStart: octDay(2, 19, 0), ShiftEnd: octDay(2, 23, 0)},
		// 白天开始，但班次名含 night
		{ID: "n2", StaffID: "staff-tuba", ShiftID: "shift-night", ShiftStart: octDay(3, 10, 0), ShiftEnd: octDay(3, 12, 0)},
		// 普通白班
		{ID: "n3", StaffID: "staff-tuba", ShiftID: "shift-morning", ShiftStart: octDay(5, 8, 0), ShiftEnd: octDay(5, 16, 0)},
	}

	s := NewState(schedule)
	vm := Derive(s, octDay(1, 0, 0))
	assert.Equal(t, 2, vm.Metrics.NightShifts)

	// 本地排班计入变更数
	require.True(t, s.CreateCustomAssignment("staff-tuba", "2025-10-20", "", "", ""))
	vm = Derive(s, octDay(1, 0, 0))
	assert.Equal(t, 1, vm.Metrics.UpdatedShifts)
}

func TestDeriveSuggestions(t *testing.T) {
	s := NewState(testSchedule())
	vm := Derive(s, octDay(6, 0, 0))

	// 已排班的 02、03，休息日 04、11，以及今天之前的日子都被跳过
	require.Len(t, vm.Suggestions, 3)
	assert.Equal(t, "2025-10-06", vm.Suggestions[0].Date)
	assert.Equal(t, "2025-10-07", vm.Suggestions[1].Date)
	assert.Equal(t, "2025-10-08", vm.Suggestions[2].Date)

	assert.Equal(t, "06 October 2025", vm.Suggestions[0].DisplayDate)

	// 班次按建议序号循环分配，规则作为理由
	assert.Equal(t, "Sabah Vardiyası", vm.Suggestions[0].ShiftName)
	assert.Equal(t, "Kural: Haftada en fazla 5 sabah", vm.Suggestions[0].Reason)
	assert.Equal(t, "Night Shift", vm.Suggestions[1].ShiftName)
	assert.Equal(t, "Kural: night rotation", vm.Suggestions[1].Reason)
	assert.Equal(t, "Sabah Vardiyası", vm.Suggestions[2].ShiftName)
}

func TestDeriveSuggestionsWithoutShifts(t *testing.T) {
	schedule := testSchedule()
	schedule.Shifts = nil

	s := NewState(schedule)
	vm := Derive(s, octDay(6, 0, 0))

	require.NotEmpty(t, vm.Suggestions)
	assert.Equal(t, suggestedShiftName, vm.Suggestions[0].ShiftName)
	assert.Equal(t, suggestionOpenDayNote, vm.Suggestions[0].Reason)
}

func TestDeriveEmptyWithoutSchedule(t *testing.T) {
	s := NewState(nil)
	vm := Derive(s, octDay(1, 0, 0))

	assert.Empty(t, vm.Events)
	assert.Empty(t, vm.OffDays)
	assert.Empty(t, vm.Suggestions)
	assert.Equal(t, PlaceholderStaffName, vm.SelectedStaffName)
	assert.False(t, vm.HasCalendarData)

	// 挂件契约保持稳定
	assert.Equal(t, "dayGridMonth", vm.Options.InitialView)
	assert.Equal(t, 1, vm.Options.FirstDay)
	assert.Equal(t, 4, vm.Options.DayMaxEventRows)
	assert.True(t, vm.Options.FixedWeekCount)
}

func TestDeriveStaffList(t *testing.T) {
	s := NewState(testSchedule())
	require.True(t, s.AddCustomStaff("Zeynep"))

	vm := Derive(s, octDay(1, 0, 0))
	require.Len(t, vm.Staffs, 4)

	assert.Equal(t, "staff-tuba", vm.Staffs[0].ID)
	assert.True(t, vm.Staffs[0].Active)
	assert.False(t, vm.Staffs[0].Custom)
	assert.Equal(t, staffColorPalette[0], vm.Staffs[0].Color)

	last := vm.Staffs[3]
	assert.Equal(t, "Zeynep", last.Name)
	assert.True(t, last.Custom)
	assert.False(t, last.Active)
	assert.Equal(t, staffColorPalette[3], last.Color)

	assert.Equal(t, octDay(1, 0, 0), vm.Options.InitialDate)
}
