package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "获取个人信息成功", myInfo)
}

// UpdateProfileLanguage 更新用户的界面语言，日历挂件的 locale 直接取自这里
func (h *Handler) UpdateProfileLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language" validate:"required,oneof=tr en"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	myInfo.Language = req.Language

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 版本冲突，说明用户记录刚被并发修改过
			h.errorResponse(w, r, "请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "语言偏好已更新", myInfo)
}
