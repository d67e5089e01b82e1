package calendar

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

const (
	defaultShiftStartClock = "08:00"
	defaultShiftEndClock   = "09:00"

	// DuplicateStaffMessage 是重名员工时唯一的内联校验提示
	DuplicateStaffMessage = "Aynı isimde bir personel zaten mevcut."
)

// MoveAssignment 处理拖拽换期。目标日期落在有效窗口外时不做任何变更并
// 返回 moved=false，由调用方把事件还原到原位。本地排班直接改写时段，
// 排班表排班则返回一个发往外部存储的变更意图。
func (s *State) MoveAssignment(id string, newStart, newEnd time.Time) (*domain.AssignmentUpdate, bool) {
	if newStart.IsZero() {
		return nil, false
	}
	if _, ok := s.ValidDaySet()[DayKey(newStart)]; !ok {
		return nil, false
	}
	if newEnd.IsZero() {
		newEnd = newStart
	}

	assignment, ok := s.AssignmentByID(id)
	if !ok {
		return nil, false
	}

	if assignment.Origin == domain.OriginLocal {
		assignment.ShiftStart = newStart
		assignment.ShiftEnd = newEnd
		return nil, true
	}

	return &domain.AssignmentUpdate{
		AssignmentID: id,
		ShiftStart:   newStart,
		ShiftEnd:     newEnd,
	}, true
}

// ClickEvent 处理事件点击：多选模式下切换选中集合，
// 否则打开详情视图并用该排班预填一份换班请求草稿
func (s *State) ClickEvent(id string) {
	if s.MultiSelect {
		if slices.Contains(s.SelectedEventIDs, id) {
			s.SelectedEventIDs = removeString(s.SelectedEventIDs, id)
		} else {
			s.SelectedEventIDs = append(s.SelectedEventIDs, id)
		}
		return
	}

	assignment, ok := s.AssignmentByID(id)
	if !ok {
		return
	}

	color := StringToColor(assignment.StaffID + "-" + shiftRef(assignment))
	s.ActiveEvent = &EventDetail{
		ID:        assignment.ID,
		StaffName: s.StaffName(assignment.StaffID),
		ShiftName: s.resolveShiftName(assignment),
		Date:      assignment.ShiftStart.Format(DisplayDateLayout),
		StartTime: assignment.ShiftStart.Format(ClockLayout),
		EndTime:   assignment.ShiftEnd.Format(ClockLayout),
		Color:     color,
	}
	s.DraftRequest = &ShiftChangeRequest{
		AssignmentID: assignment.ID,
		StaffID:      assignment.StaffID,
		Date:         DayKey(assignment.ShiftStart),
		StartTime:    assignment.ShiftStart.Format(ClockLayout),
		EndTime:      assignment.ShiftEnd.Format(ClockLayout),
	}
}

// CloseDetail 关闭详情视图并丢弃草稿
func (s *State) CloseDetail() {
	s.ActiveEvent = nil
	s.DraftRequest = nil
}

// CreateCustomAssignment 创建本地排班。员工和日期缺一不可，
// 时刻缺省为 08:00–09:00，标题缺省为 Özel Vardiya。
func (s *State) CreateCustomAssignment(staffID, date, startClock, endClock, title string) bool {
	if staffID == "" || date == "" {
		return false
	}
	if startClock == "" {
		startClock = defaultShiftStartClock
	}
	if endClock == "" {
		endClock = defaultShiftEndClock
	}
	if title == "" {
		title = DefaultCustomTitle
	}

	start, err := ParseDayClock(date, startClock)
	if err != nil {
		return false
	}
	end, err := ParseDayClock(date, endClock)
	if err != nil {
		return false
	}

	s.CustomAssignments = append(s.CustomAssignments, domain.Assignment{
		ID:         "custom-" + uuid.NewString(),
		StaffID:    staffID,
		ShiftName:  title,
		ShiftStart: start,
		ShiftEnd:   end,
		Origin:     domain.OriginLocal,
	})
	return true
}

// AddCustomStaff 添加本地员工。空白名字直接忽略；
// 与任何可见员工重名（大小写不敏感）时拒绝并记录提示信息。
func (s *State) AddCustomStaff(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}

	if s.isDuplicateStaffName(trimmed) {
		s.StaffError = DuplicateStaffMessage
		return false
	}

	s.StaffError = ""
	staff := domain.Staff{
		ID:   "custom-staff-" + uuid.NewString(),
		Name: trimmed,
	}
	s.CustomStaffs = append(s.CustomStaffs, staff)

	if s.SelectedStaffID == "" {
		s.SelectedStaffID = staff.ID
	}
	return true
}

// RemoveStaff 移除员工，先经宿主确认。本地员工连同其本地排班一并删除；
// 排班表员工只加入隐藏集合，绝不真正删除。选中员工被移除时落到余下的第一位。
func (s *State) RemoveStaff(staffID string, host Host) bool {
	staffName := s.StaffName(staffID)
	if host != nil && !host.Confirm(fmt.Sprintf("%s isimli personeli kaldırmak istediğinizden emin misiniz?", staffName)) {
		return false
	}

	isCustom := slices.ContainsFunc(s.CustomStaffs, func(st domain.Staff) bool { return st.ID == staffID })
	if isCustom {
		s.CustomStaffs = slices.DeleteFunc(s.CustomStaffs, func(st domain.Staff) bool { return st.ID == staffID })
		s.CustomAssignments = slices.DeleteFunc(s.CustomAssignments, func(a domain.Assignment) bool { return a.StaffID == staffID })
	} else if !slices.Contains(s.HiddenStaffIDs, staffID) {
		s.HiddenStaffIDs = append(s.HiddenStaffIDs, staffID)
	}

	if s.SelectedStaffID == staffID {
		s.SelectedStaffID = ""
		s.EnsureSelection()
	}
	return true
}

// UpdateDraft 更新换班请求草稿的可编辑字段，没有草稿时不做任何事
func (s *State) UpdateDraft(date, startClock, endClock, message string) {
	if s.DraftRequest == nil {
		return
	}
	if date != "" {
		s.DraftRequest.Date = date
	}
	if startClock != "" {
		s.DraftRequest.StartTime = startClock
	}
	if endClock != "" {
		s.DraftRequest.EndTime = endClock
	}
	s.DraftRequest.Message = message
}

// ApplyDraftTimeChange 把草稿里的时段应用到对应排班。
// 起止解析失败或起不早于止时静默拒绝。
func (s *State) ApplyDraftTimeChange() (*domain.AssignmentUpdate, bool) {
	if s.DraftRequest == nil {
		return nil, false
	}

	newStart, err := ParseDayClock(s.DraftRequest.Date, s.DraftRequest.StartTime)
	if err != nil {
		return nil, false
	}
	newEnd, err := ParseDayClock(s.DraftRequest.Date, s.DraftRequest.EndTime)
	if err != nil {
		return nil, false
	}
	if !newEnd.After(newStart) {
		return nil, false
	}

	var intent *domain.AssignmentUpdate
	assignment, ok := s.AssignmentByID(s.DraftRequest.AssignmentID)
	if ok && assignment.Origin == domain.OriginLocal {
		assignment.ShiftStart = newStart
		assignment.ShiftEnd = newEnd
	} else {
		intent = &domain.AssignmentUpdate{
			AssignmentID: s.DraftRequest.AssignmentID,
			ShiftStart:   newStart,
			ShiftEnd:     newEnd,
		}
	}

	if s.ActiveEvent != nil {
		s.ActiveEvent.Date = newStart.Format(DisplayDateLayout)
		s.ActiveEvent.StartTime = newStart.Format(ClockLayout)
		s.ActiveEvent.EndTime = newEnd.Format(ClockLayout)
	}
	return intent, true
}

// SaveDraftRequest 把当前草稿以 pending 状态追加到请求列表头部，草稿保留
func (s *State) SaveDraftRequest(now time.Time) (ShiftChangeRequestEntry, bool) {
	if s.DraftRequest == nil {
		return ShiftChangeRequestEntry{}, false
	}

	entry := ShiftChangeRequestEntry{
		ShiftChangeRequest: *s.DraftRequest,
		ID:                 "req-" + uuid.NewString(),
		StaffName:          s.StaffName(s.DraftRequest.StaffID),
		Status:             RequestPending,
		CreatedAt:          now,
	}
	s.Requests = append([]ShiftChangeRequestEntry{entry}, s.Requests...)
	return entry, true
}

// SetRequestStatus 流转请求状态，对底层排班没有任何级联效果
func (s *State) SetRequestStatus(requestID string, status RequestStatus) bool {
	for i := range s.Requests {
		if s.Requests[i].ID == requestID {
			s.Requests[i].Status = status
			return true
		}
	}
	return false
}

// ApplySuggestion 把建议落地为一条本地排班，使用被引用班次的标准时段
func (s *State) ApplySuggestion(suggestion ShiftSuggestion) bool {
	if s.SelectedStaffID == "" {
		return false
	}

	startClock, endClock := defaultShiftStartClock, defaultShiftEndClock
	if shift, ok := s.shiftByName(suggestion.ShiftName); ok {
		if shift.ShiftStart != "" {
			startClock = shift.ShiftStart
		}
		if shift.ShiftEnd != "" {
			endClock = shift.ShiftEnd
		}
	}

	return s.CreateCustomAssignmentWithTitle(suggestion.Date, startClock, endClock, suggestion.ShiftName)
}

// CreateCustomAssignmentWithTitle 以当前选中员工创建本地排班
func (s *State) CreateCustomAssignmentWithTitle(date, startClock, endClock, title string) bool {
	return s.CreateCustomAssignment(s.SelectedStaffID, date, startClock, endClock, title)
}

// RemoveAssignment 移除单条排班：本地排班直接删除，排班表排班加入软删除集合。
// 同时将其移出选中集合；详情视图正展示它时一并关闭。重复调用是幂等的。
func (s *State) RemoveAssignment(id string) {
	assignment, ok := s.AssignmentByID(id)
	if ok && assignment.Origin == domain.OriginLocal {
		s.CustomAssignments = slices.DeleteFunc(s.CustomAssignments, func(a domain.Assignment) bool { return a.ID == id })
	} else if !slices.Contains(s.RemovedAssignmentIDs, id) {
		s.RemovedAssignmentIDs = append(s.RemovedAssignmentIDs, id)
	}

	s.SelectedEventIDs = removeString(s.SelectedEventIDs, id)
	if s.ActiveEvent != nil && s.ActiveEvent.ID == id {
		s.CloseDetail()
	}
}

// DeleteSelected 批量删除选中的排班：按来源拆分为硬删除和软删除，然后清空选中集合
func (s *State) DeleteSelected() bool {
	if len(s.SelectedEventIDs) == 0 {
		return false
	}

	for _, id := range s.SelectedEventIDs {
		assignment, ok := s.AssignmentByID(id)
		if ok && assignment.Origin == domain.OriginLocal {
			s.CustomAssignments = slices.DeleteFunc(s.CustomAssignments, func(a domain.Assignment) bool { return a.ID == id })
		} else if !slices.Contains(s.RemovedAssignmentIDs, id) {
			s.RemovedAssignmentIDs = append(s.RemovedAssignmentIDs, id)
		}
	}
	s.SelectedEventIDs = nil
	return true
}

// ToggleMultiSelect 切换多选模式，关闭时清空选中集合
func (s *State) ToggleMultiSelect() {
	if s.MultiSelect {
		s.SelectedEventIDs = nil
	}
	s.MultiSelect = !s.MultiSelect
}

func (s *State) shiftByName(name string) (domain.Shift, bool) {
	if s.Schedule == nil {
		return domain.Shift{}, false
	}
	for _, shift := range s.Schedule.Shifts {
		if shift.Name == name {
			return shift, true
		}
	}
	if len(s.Schedule.Shifts) > 0 {
		return s.Schedule.Shifts[0], true
	}
	return domain.Shift{}, false
}

// resolveShiftName 解析排班的标题：本地排班使用自带标题，
// 排班表排班按班次 ID 查参照数据，查不到时使用占位名
func (s *State) resolveShiftName(a *domain.Assignment) string {
	if a.Origin == domain.OriginLocal {
		if a.ShiftName != "" {
			return a.ShiftName
		}
		return DefaultCustomTitle
	}
	if shift, ok := s.ShiftByID(a.ShiftID); ok {
		return shift.Name
	}
	return PlaceholderShiftName
}

// shiftRef 返回参与取色哈希的班次引用，本地排班以标题代替班次 ID
func shiftRef(a *domain.Assignment) string {
	if a.Origin == domain.OriginLocal {
		return a.ShiftName
	}
	return a.ShiftID
}
