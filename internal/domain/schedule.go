package domain

import "time"

type AssignmentOrigin string

const (
	// OriginSchedule 表示来自远端排班表的权威记录
	OriginSchedule AssignmentOrigin = "schedule"
	// OriginLocal 表示仅存在于会话中的本地记录
	OriginLocal AssignmentOrigin = "local"
)

type PairRange struct {
	StaffID   string `json:"staffId"`
	StartDate string `json:"startDate"` // DD.MM.YYYY
	EndDate   string `json:"endDate"`   // DD.MM.YYYY
}

type Staff struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	OffDays  []string    `json:"offDays,omitempty"` // DD.MM.YYYY
	PairList []PairRange `json:"pairList,omitempty"`
}

type Shift struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ShiftRule  string `json:"shiftRule,omitempty"`
	ShiftStart string `json:"shiftStart,omitempty"` // HH:mm
	ShiftEnd   string `json:"shiftEnd,omitempty"`   // HH:mm
}

type Assignment struct {
	ID         string           `json:"id"`
	StaffID    string           `json:"staffId"`
	ShiftID    string           `json:"shiftId,omitempty"`
	ShiftName  string           `json:"shiftName,omitempty"`
	ShiftStart time.Time        `json:"shiftStart"`
	ShiftEnd   time.Time        `json:"shiftEnd"`
	Origin     AssignmentOrigin `json:"origin"`
}

type Schedule struct {
	ID                int64        `json:"id"`
	Name              string       `json:"name"`
	ScheduleStartDate time.Time    `json:"scheduleStartDate"`
	ScheduleEndDate   time.Time    `json:"scheduleEndDate"`
	Staffs            []Staff      `json:"staffs"`
	Shifts            []Shift      `json:"shifts"`
	Assignments       []Assignment `json:"assignments"`
	CreatedAt         time.Time    `json:"createdAt"`
	Version           int32        `json:"-"`
}
