package calendar

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

// Derive 从会话状态推导出完整的视图模型。推导是纯函数：
// 除了写出自己的五类产物之外没有任何副作用，每次整体重建、从不原地修改。
func Derive(s *State, now time.Time) ViewModel {
	vm := emptyViewModel(s)

	if s.Schedule == nil || s.SelectedStaffID == "" {
		return vm
	}

	scheduleStaff, hasScheduleStaff := findStaff(s.Schedule.Staffs, s.SelectedStaffID)
	customStaff, hasCustomStaff := findStaff(s.CustomStaffs, s.SelectedStaffID)
	if !hasScheduleStaff && !hasCustomStaff {
		return vm
	}

	assignments := s.gatherAssignments(hasScheduleStaff)
	if len(assignments) == 0 && !hasScheduleStaff {
		return vm
	}

	staffName := PlaceholderStaffName
	switch {
	case hasScheduleStaff:
		staffName = scheduleStaff.Name
	case hasCustomStaff:
		staffName = customStaff.Name
	}
	vm.SelectedStaffName = staffName

	validSet := s.ValidDaySet()
	selectedSet := makeSet(s.SelectedEventIDs)

	// 每条可见排班对应一个日历事件，保持输入顺序
	vm.Events = make([]CalendarEvent, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		background := StringToColor(a.StaffID + "-" + shiftRef(a))
		_, inRange := validSet[DayKey(a.ShiftStart)]
		_, selected := selectedSet[a.ID]

		vm.Events = append(vm.Events, CalendarEvent{
			ID:              a.ID,
			Title:           s.resolveShiftName(a),
			Start:           a.ShiftStart,
			End:             a.ShiftEnd,
			BackgroundColor: background,
			BorderColor:     background,
			TextColor:       ReadableTextColor(background),
			Updated:         a.Origin == domain.OriginLocal,
			OutOfRange:      !inRange,
			Selected:        selected,
			StaffID:         a.StaffID,
			StaffName:       staffName,
			ShiftName:       s.resolveShiftName(a),
		})
	}

	// 休息日：排班表员工优先，否则取本地员工的休息日，统一归一化为日期键
	offDays := scheduleStaff.OffDays
	if !hasScheduleStaff {
		offDays = customStaff.OffDays
	}
	offDaySet := make(map[string]struct{}, len(offDays))
	for _, offDay := range offDays {
		if key := NormalizeOffDay(offDay); key != "" {
			offDaySet[key] = struct{}{}
			vm.OffDays = append(vm.OffDays, key)
		}
	}
	slices.Sort(vm.OffDays)

	// pair 高亮只看排班表员工，同一天后处理的区间覆盖先处理的
	if hasScheduleStaff {
		colorMap := StaffColorMap(s.CombinedStaffs())
		for _, pair := range scheduleStaff.PairList {
			partnerName := placeholderPairName
			if partner, ok := findStaff(s.Schedule.Staffs, pair.StaffID); ok {
				partnerName = partner.Name
			}
			color, ok := colorMap[pair.StaffID]
			if !ok {
				color = fallbackPairColor
			}
			for _, day := range EnumerateDays(pair.StartDate, pair.EndDate, OffDayLayout) {
				vm.PairHighlights[day] = PairHighlight{Color: color, PartnerName: partnerName}
			}
		}
	}

	vm.Metrics = s.deriveMetrics(assignments)
	vm.Suggestions = s.deriveSuggestions(assignments, offDaySet, now)
	vm.HasCalendarData = len(s.Schedule.Staffs) > 0 && len(s.Schedule.Assignments) > 0 || len(s.CustomAssignments) > 0
	return vm
}

// gatherAssignments 汇总当前员工的可见排班：排班表排班过滤掉软删除项，
// 再并上该员工的本地排班
func (s *State) gatherAssignments(hasScheduleStaff bool) []domain.Assignment {
	removed := makeSet(s.RemovedAssignmentIDs)

	var assignments []domain.Assignment
	if hasScheduleStaff {
		for _, a := range s.Schedule.Assignments {
			if a.StaffID != s.SelectedStaffID {
				continue
			}
			if _, ok := removed[a.ID]; ok {
				continue
			}
			a.Origin = domain.OriginSchedule
			assignments = append(assignments, a)
		}
	}

	for _, a := range s.CustomAssignments {
		if a.StaffID != s.SelectedStaffID {
			continue
		}
		a.Origin = domain.OriginLocal
		assignments = append(assignments, a)
	}
	return assignments
}

func (s *State) deriveMetrics(assignments []domain.Assignment) StaffMetrics {
	metrics := StaffMetrics{TotalShifts: len(assignments)}

	var workedHours float64
	for i := range assignments {
		a := &assignments[i]
		workedHours += a.ShiftEnd.Sub(a.ShiftStart).Hours()

		if a.ShiftStart.Hour() >= 18 || s.isNightShift(a) {
			metrics.NightShifts++
		}
		if a.Origin == domain.OriginLocal {
			metrics.UpdatedShifts++
		}
	}
	metrics.WorkedHours = math.Round(workedHours*10) / 10
	return metrics
}

// isNightShift 检查解析出的班次名或规则里是否含有 night（大小写不敏感）
func (s *State) isNightShift(a *domain.Assignment) bool {
	name := s.resolveShiftName(a)
	if strings.Contains(strings.ToLower(name), "night") {
		return true
	}
	if shift, ok := s.ShiftByID(a.ShiftID); ok {
		return strings.Contains(strings.ToLower(shift.ShiftRule), "night")
	}
	return false
}

// deriveSuggestions 在有效窗口内按时间顺序找出最多 3 个可排班的空档：
// 当天没有排班、不是休息日、且不早于今天。班次按序号对班次总数取模循环分配。
func (s *State) deriveSuggestions(assignments []domain.Assignment, offDaySet map[string]struct{}, now time.Time) []ShiftSuggestion {
	assignedSet := make(map[string]struct{}, len(assignments))
	for i := range assignments {
		assignedSet[DayKey(assignments[i].ShiftStart)] = struct{}{}
	}

	today := truncateToDay(now)
	shifts := s.Schedule.Shifts

	var suggestions []ShiftSuggestion
	for _, day := range ValidDays(s.Schedule.ScheduleStartDate, s.Schedule.ScheduleEndDate) {
		if len(suggestions) == 3 {
			break
		}
		if _, ok := assignedSet[day]; ok {
			continue
		}
		if _, ok := offDaySet[day]; ok {
			continue
		}
		date, err := time.Parse(DayKeyLayout, day)
		if err != nil || date.Before(today) {
			continue
		}

		suggestion := ShiftSuggestion{
			Date:        day,
			DisplayDate: date.Format(DisplayDateLayout),
			ShiftName:   suggestedShiftName,
			Reason:      suggestionOpenDayNote,
		}
		if len(shifts) > 0 {
			shift := shifts[len(suggestions)%len(shifts)]
			suggestion.ShiftName = shift.Name
			if shift.ShiftRule != "" {
				suggestion.Reason = "Kural: " + shift.ShiftRule
			}
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions
}

// emptyViewModel 构造空缺省输出，员工列表等与选中员工无关的部分仍然填充
func emptyViewModel(s *State) ViewModel {
	vm := ViewModel{
		Events:            []CalendarEvent{},
		OffDays:           []string{},
		PairHighlights:    map[string]PairHighlight{},
		Suggestions:       []ShiftSuggestion{},
		Requests:          s.Requests,
		SelectedStaffID:   s.SelectedStaffID,
		SelectedStaffName: PlaceholderStaffName,
		SelectedEventIDs:  s.SelectedEventIDs,
		MultiSelect:       s.MultiSelect,
		ActiveEvent:       s.ActiveEvent,
		DraftRequest:      s.DraftRequest,
		StaffError:        s.StaffError,
	}
	if vm.Requests == nil {
		vm.Requests = []ShiftChangeRequestEntry{}
	}
	vm.CanDeleteSelected = len(s.SelectedEventIDs) > 0

	combined := s.CombinedStaffs()
	colorMap := StaffColorMap(combined)
	vm.Staffs = make([]StaffItem, 0, len(combined))
	customSet := make(map[string]struct{}, len(s.CustomStaffs))
	for _, staff := range s.CustomStaffs {
		customSet[staff.ID] = struct{}{}
	}
	for _, staff := range combined {
		_, isCustom := customSet[staff.ID]
		vm.Staffs = append(vm.Staffs, StaffItem{
			ID:     staff.ID,
			Name:   staff.Name,
			Color:  colorMap[staff.ID],
			Active: staff.ID == s.SelectedStaffID,
			Custom: isCustom,
		})
	}

	vm.Options = Options{
		Editable:        true,
		Selectable:      true,
		InitialView:     "dayGridMonth",
		FirstDay:        1,
		DayMaxEventRows: 4,
		FixedWeekCount:  true,
	}
	if s.Schedule != nil {
		vm.Options.InitialDate = s.Schedule.ScheduleStartDate
	}
	return vm
}

func findStaff(staffs []domain.Staff, id string) (domain.Staff, bool) {
	for _, staff := range staffs {
		if staff.ID == id {
			return staff, true
		}
	}
	return domain.Staff{}, false
}
