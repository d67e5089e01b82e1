package calendar

import (
	"slices"
	"strings"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

// State 是日历容器的全部会话状态。Schedule 快照由外部存储提供，
// 每次请求重新注入，其余字段属于会话本地状态并随会话持久化。
// 所有命令都是 State 上的纯状态迁移，需要外发的变更以意图形式返回。
type State struct {
	Schedule *domain.Schedule `json:"-"`

	SelectedStaffID      string                    `json:"selectedStaffId"`
	CustomAssignments    []domain.Assignment       `json:"customAssignments"`
	CustomStaffs         []domain.Staff            `json:"customStaffs"`
	HiddenStaffIDs       []string                  `json:"hiddenStaffIds"`
	RemovedAssignmentIDs []string                  `json:"removedAssignmentIds"`
	SelectedEventIDs     []string                  `json:"selectedEventIds"`
	MultiSelect          bool                      `json:"multiSelect"`
	ActiveEvent          *EventDetail              `json:"activeEvent,omitempty"`
	DraftRequest         *ShiftChangeRequest       `json:"draftRequest,omitempty"`
	Requests             []ShiftChangeRequestEntry `json:"requests"`
	StaffError           string                    `json:"staffError,omitempty"`
}

func NewState(schedule *domain.Schedule) *State {
	s := &State{Schedule: schedule}
	s.EnsureSelection()
	return s
}

// EnsureSelection 保证选中的员工存在于合并后的员工集合中，否则落到第一位
func (s *State) EnsureSelection() {
	combined := s.CombinedStaffs()
	if len(combined) == 0 {
		s.SelectedStaffID = ""
		return
	}

	for _, staff := range combined {
		if staff.ID == s.SelectedStaffID {
			return
		}
	}
	s.SelectedStaffID = combined[0].ID
}

// SelectStaff 切换当前员工，并清空多选状态
func (s *State) SelectStaff(staffID string) {
	if staffID == s.SelectedStaffID {
		return
	}
	s.SelectedStaffID = staffID
	s.SelectedEventIDs = nil
	s.MultiSelect = false
	s.EnsureSelection()
}

// VisibleScheduleStaffs 返回未被隐藏的排班表员工
func (s *State) VisibleScheduleStaffs() []domain.Staff {
	if s.Schedule == nil {
		return nil
	}

	hidden := makeSet(s.HiddenStaffIDs)
	visible := make([]domain.Staff, 0, len(s.Schedule.Staffs))
	for _, staff := range s.Schedule.Staffs {
		if _, ok := hidden[staff.ID]; !ok {
			visible = append(visible, staff)
		}
	}
	return visible
}

// CombinedStaffs 返回排班表员工与本地员工的并集（均排除隐藏项），
// 排班表员工在前，保证色表顺序稳定
func (s *State) CombinedStaffs() []domain.Staff {
	combined := s.VisibleScheduleStaffs()

	hidden := makeSet(s.HiddenStaffIDs)
	for _, staff := range s.CustomStaffs {
		if _, ok := hidden[staff.ID]; !ok {
			combined = append(combined, staff)
		}
	}
	return combined
}

// StaffByID 在合并员工集合中查找员工
func (s *State) StaffByID(staffID string) (domain.Staff, bool) {
	for _, staff := range s.CombinedStaffs() {
		if staff.ID == staffID {
			return staff, true
		}
	}
	return domain.Staff{}, false
}

// StaffName 返回员工姓名，查不到时使用占位名
func (s *State) StaffName(staffID string) string {
	if staff, ok := s.StaffByID(staffID); ok {
		return staff.Name
	}
	return PlaceholderStaffName
}

// ShiftByID 在排班表参照数据中查找班次
func (s *State) ShiftByID(shiftID string) (domain.Shift, bool) {
	if s.Schedule == nil {
		return domain.Shift{}, false
	}
	for _, shift := range s.Schedule.Shifts {
		if shift.ID == shiftID {
			return shift, true
		}
	}
	return domain.Shift{}, false
}

// AssignmentByID 先查本地排班再查排班表排班，按显式来源标签区分
func (s *State) AssignmentByID(id string) (*domain.Assignment, bool) {
	for i := range s.CustomAssignments {
		if s.CustomAssignments[i].ID == id {
			return &s.CustomAssignments[i], true
		}
	}
	if s.Schedule != nil {
		for i := range s.Schedule.Assignments {
			if s.Schedule.Assignments[i].ID == id {
				return &s.Schedule.Assignments[i], true
			}
		}
	}
	return nil, false
}

// ValidDaySet 返回排班表有效窗口内日期键的集合
func (s *State) ValidDaySet() map[string]struct{} {
	if s.Schedule == nil {
		return map[string]struct{}{}
	}
	return makeSet(ValidDays(s.Schedule.ScheduleStartDate, s.Schedule.ScheduleEndDate))
}

// isDuplicateStaffName 在当前可见员工中做大小写不敏感的重名检查
func (s *State) isDuplicateStaffName(name string) bool {
	normalized := strings.ToLower(name)
	for _, staff := range s.CombinedStaffs() {
		if strings.ToLower(staff.Name) == normalized {
			return true
		}
	}
	return false
}

func removeString(values []string, target string) []string {
	return slices.DeleteFunc(slices.Clone(values), func(v string) bool { return v == target })
}
