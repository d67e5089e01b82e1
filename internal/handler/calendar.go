package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/smart-maple/roster-calendar/backend/internal/calendar"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

// httpHost 是 calendar.Host 在 HTTP 场景下的实现。
// 确认结果由客户端随请求带上，确认文案则原样返回，供客户端弹窗后重试。
type httpHost struct {
	confirmed     bool
	promptMessage string
}

func (hh *httpHost) Confirm(message string) bool {
	hh.promptMessage = message
	return hh.confirmed
}

func (hh *httpHost) ComposeMail(target string) {
	// 邮件目标由命令直接返回给调用方，无需回调
}

func (hh *httpHost) SetNavigationEnabled(direction calendar.NavDirection, enabled bool) {
	// 翻页可用性直接随 NavState 返回，这里无事可做
}

func (h *Handler) sessionState(r *http.Request) *calendar.State {
	return r.Context().Value(SessionCtx).(*calendar.State)
}

// respondCalendar 落盘会话状态后返回最新的视图模型
func (h *Handler) respondCalendar(w http.ResponseWriter, r *http.Request, msg string, state *calendar.State) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	if err := h.saveSession(r.Context(), myInfo.ID, state); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	vm := calendar.Derive(state, time.Now())
	vm.Options.Locale = myInfo.Language
	h.successResponse(w, r, msg, vm)
}

func (h *Handler) publish(queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mqChannel.PublishWithContext(
		ctx,
		"",
		queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	h.respondCalendar(w, r, "获取日历成功", h.sessionState(r))
}

func (h *Handler) SelectStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID string `json:"staffId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	state.SelectStaff(req.StaffID)

	h.respondCalendar(w, r, "已切换员工", state)
}

func (h *Handler) VisibleRange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VisibleStart string `json:"visibleStart" validate:"required"`
		VisibleEnd   string `json:"visibleEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	visibleStart, err := time.Parse(time.RFC3339, req.VisibleStart)
	if err != nil {
		h.errorResponse(w, r, "无效的可见区间")
		return
	}
	visibleEnd, err := time.Parse(time.RFC3339, req.VisibleEnd)
	if err != nil {
		h.errorResponse(w, r, "无效的可见区间")
		return
	}

	nav := h.sessionState(r).HandleVisibleRange(visibleStart, visibleEnd, nil)
	h.successResponse(w, r, "获取翻页状态成功", nav)
}

func (h *Handler) ToggleMultiSelect(w http.ResponseWriter, r *http.Request) {
	state := h.sessionState(r)
	state.ToggleMultiSelect()
	h.respondCalendar(w, r, "已切换多选模式", state)
}

func (h *Handler) MoveEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftStart string `json:"shiftStart" validate:"required"`
		ShiftEnd   string `json:"shiftEnd"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	newStart, err := time.Parse(time.RFC3339, req.ShiftStart)
	if err != nil {
		h.errorResponse(w, r, "无效的排班时间")
		return
	}
	var newEnd time.Time
	if req.ShiftEnd != "" {
		newEnd, err = time.Parse(time.RFC3339, req.ShiftEnd)
		if err != nil {
			h.errorResponse(w, r, "无效的排班时间")
			return
		}
	}

	state := h.sessionState(r)
	intent, moved := state.MoveAssignment(chi.URLParam(r, "id"), newStart, newEnd)
	if !moved {
		// 目标日期在排班表有效范围外，客户端应把事件还原到原位
		h.errorResponse(w, r, "目标日期超出排班表有效范围")
		return
	}

	if intent != nil {
		if err := h.publish("assignment_update_queue", intent); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.respondCalendar(w, r, "排班时间已更新", state)
}

func (h *Handler) ClickEvent(w http.ResponseWriter, r *http.Request) {
	state := h.sessionState(r)
	state.ClickEvent(chi.URLParam(r, "id"))
	h.respondCalendar(w, r, "已处理事件点击", state)
}

func (h *Handler) CloseDetail(w http.ResponseWriter, r *http.Request) {
	state := h.sessionState(r)
	state.CloseDetail()
	h.respondCalendar(w, r, "已关闭详情", state)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	state := h.sessionState(r)
	state.RemoveAssignment(chi.URLParam(r, "id"))
	h.respondCalendar(w, r, "排班已移除", state)
}

func (h *Handler) DeleteSelectedEvents(w http.ResponseWriter, r *http.Request) {
	state := h.sessionState(r)
	if !state.DeleteSelected() {
		h.errorResponse(w, r, "没有选中的排班")
		return
	}
	h.respondCalendar(w, r, "选中的排班已移除", state)
}

func (h *Handler) CreateCustomAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID   string `json:"staffId" validate:"required"`
		Date      string `json:"date" validate:"required"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		ShiftName string `json:"shiftName"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	if !state.CreateCustomAssignment(req.StaffID, req.Date, req.StartTime, req.EndTime, req.ShiftName) {
		h.errorResponse(w, r, "无法创建自定义排班")
		return
	}

	h.respondCalendar(w, r, "自定义排班已创建", state)
}

func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	if !state.AddCustomStaff(req.Name) {
		// 重名提示属于会话状态的一部分，需要随会话一起落盘
		myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
		if err := h.saveSession(r.Context(), myInfo.ID, state); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		msg := state.StaffError
		if msg == "" {
			msg = "无效的员工姓名"
		}
		h.errorResponse(w, r, msg)
		return
	}

	h.respondCalendar(w, r, "员工已添加", state)
}

func (h *Handler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	host := &httpHost{confirmed: r.URL.Query().Get("confirm") == "true"}

	state := h.sessionState(r)
	if !state.RemoveStaff(chi.URLParam(r, "id"), host) {
		// 把确认文案带回去，客户端确认后以 ?confirm=true 重发
		h.successResponse(w, r, "操作已取消", struct {
			ConfirmMessage string `json:"confirmMessage"`
		}{ConfirmMessage: host.promptMessage})
		return
	}

	h.respondCalendar(w, r, "员工已移除", state)
}

func (h *Handler) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string `json:"date" validate:"required"`
		ShiftName string `json:"shiftName"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	suggestion := calendar.ShiftSuggestion{Date: req.Date, ShiftName: req.ShiftName}
	if !state.ApplySuggestion(suggestion) {
		h.errorResponse(w, r, "无法应用该建议")
		return
	}

	h.respondCalendar(w, r, "建议已应用", state)
}

func (h *Handler) ApplyRequestTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string `json:"date"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Message   string `json:"message"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	state.UpdateDraft(req.Date, req.StartTime, req.EndTime, req.Message)

	intent, ok := state.ApplyDraftTimeChange()
	if !ok {
		h.errorResponse(w, r, "无效的请求时间")
		return
	}

	if intent != nil {
		if err := h.publish("assignment_update_queue", intent); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.respondCalendar(w, r, "排班时间已按请求更新", state)
}

func (h *Handler) SaveRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      string `json:"date"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
		Message   string `json:"message"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	state.UpdateDraft(req.Date, req.StartTime, req.EndTime, req.Message)

	if _, ok := state.SaveDraftRequest(time.Now()); !ok {
		h.errorResponse(w, r, "没有待保存的请求草稿")
		return
	}

	h.respondCalendar(w, r, "换班请求已保存", state)
}

func (h *Handler) SetRequestStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=pending approved rejected"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	state := h.sessionState(r)
	if !state.SetRequestStatus(chi.URLParam(r, "id"), calendar.RequestStatus(req.Status)) {
		h.errorResponse(w, r, "请求不存在")
		return
	}

	h.respondCalendar(w, r, "请求状态已更新", state)
}

func (h *Handler) ComposeRequestMail(w http.ResponseWriter, r *http.Request) {
	state := h.sessionState(r)

	target, ok := state.ComposeRequestMail(h.config.Calendar.RequestMailTo, &httpHost{})
	if !ok {
		h.errorResponse(w, r, "没有待发送的请求草稿")
		return
	}

	// 同时投递一封站内通知邮件
	draft := state.DraftRequest
	mailMessage := domain.MailMessage{
		Type: "shift_change_request",
		To:   h.config.Calendar.RequestMailTo,
		Data: domain.ShiftChangeRequestMailData{
			StaffName: state.StaffName(draft.StaffID),
			Date:      draft.Date,
			StartTime: draft.StartTime,
			EndTime:   draft.EndTime,
			Message:   draft.Message,
		},
	}
	if err := h.publish("email_queue", mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "邮件草稿已生成", struct {
		Target string `json:"target"`
	}{Target: target})
}
