package calendar

import (
	"time"
)

// 解析不到员工或班次时使用的占位值
const (
	PlaceholderStaffName  = "Personel"
	PlaceholderShiftName  = "Shift"
	DefaultCustomTitle    = "Özel Vardiya"
	placeholderPairName   = "Pair arkadaşı"
	suggestedShiftName    = "Önerilen Vardiya"
	suggestionOpenDayNote = "Boş gün bulundu"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// CalendarEvent 是每个可见排班对应的日历事件，每次推导整体重建
type CalendarEvent struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	AllDay          bool      `json:"allDay"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	TextColor       string    `json:"textColor"`
	Updated         bool      `json:"updated"`
	OutOfRange      bool      `json:"outOfRange"`
	Selected        bool      `json:"selected"`
	StaffID         string    `json:"staffId"`
	StaffName       string    `json:"staffName"`
	ShiftName       string    `json:"shiftName"`
}

// EventDetail 是点击事件后打开的详情视图内容
type EventDetail struct {
	ID        string `json:"id"`
	StaffName string `json:"staffName"`
	ShiftName string `json:"shiftName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Color     string `json:"color"`
}

// ShiftChangeRequest 是一次只存在一份的换班请求草稿
type ShiftChangeRequest struct {
	AssignmentID string `json:"assignmentId"`
	StaffID      string `json:"staffId"`
	Date         string `json:"date"` // YYYY-MM-DD
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Message      string `json:"message"`
}

// ShiftChangeRequestEntry 是保存下来的换班请求，仅追加，状态流转只在本地生效
type ShiftChangeRequestEntry struct {
	ShiftChangeRequest
	ID        string        `json:"id"`
	StaffName string        `json:"staffName"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PairHighlight struct {
	Color       string `json:"color"`
	PartnerName string `json:"partnerName"`
}

type StaffMetrics struct {
	TotalShifts   int     `json:"totalShifts"`
	WorkedHours   float64 `json:"workedHours"`
	NightShifts   int     `json:"nightShifts"`
	UpdatedShifts int     `json:"updatedShifts"`
}

type ShiftSuggestion struct {
	Date        string `json:"date"` // YYYY-MM-DD
	DisplayDate string `json:"displayDate"`
	ShiftName   string `json:"shiftName"`
	Reason      string `json:"reason"`
}

// StaffItem 是员工侧边列表的一项
type StaffItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
	Custom bool   `json:"custom"`
}

// Options 是传给日历挂件的配置契约
type Options struct {
	Locale            string    `json:"locale"`
	Editable          bool      `json:"editable"`
	Selectable        bool      `json:"selectable"`
	InitialView       string    `json:"initialView"`
	InitialDate       time.Time `json:"initialDate"`
	FirstDay          int       `json:"firstDay"`
	DayMaxEventRows   int       `json:"dayMaxEventRows"`
	FixedWeekCount    bool      `json:"fixedWeekCount"`
	EventDurationEdit bool      `json:"eventDurationEditable"`
}

// ViewModel 是视图模型推导的完整输出，由推导方独占持有
type ViewModel struct {
	Events            []CalendarEvent           `json:"events"`
	OffDays           []string                  `json:"offDays"`
	PairHighlights    map[string]PairHighlight  `json:"pairHighlights"`
	Metrics           StaffMetrics              `json:"metrics"`
	Suggestions       []ShiftSuggestion         `json:"suggestions"`
	Staffs            []StaffItem               `json:"staffs"`
	SelectedStaffID   string                    `json:"selectedStaffId"`
	SelectedStaffName string                    `json:"selectedStaffName"`
	SelectedEventIDs  []string                  `json:"selectedEventIds"`
	MultiSelect       bool                      `json:"multiSelect"`
	CanDeleteSelected bool                      `json:"canDeleteSelected"`
	ActiveEvent       *EventDetail              `json:"activeEvent,omitempty"`
	DraftRequest      *ShiftChangeRequest       `json:"draftRequest,omitempty"`
	Requests          []ShiftChangeRequestEntry `json:"requests"`
	StaffError        string                    `json:"staffError,omitempty"`
	HasCalendarData   bool                      `json:"hasCalendarData"`
	Options           Options                   `json:"options"`
}
