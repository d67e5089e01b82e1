package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response 是所有接口共用的响应信封
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeEnvelope 统一写出信封。业务层面的失败也走 200，
// 客户端只看 success 字段；HTTP 状态码仅在服务器内部错误时变化。
func (h *Handler) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, success bool, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload := Response{
		Success: success,
		Message: msg,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("写入响应失败", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeEnvelope(w, r, http.StatusOK, true, msg, data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeEnvelope(w, r, http.StatusOK, false, msg, nil)
}

// badRequest 把请求体解析和校验错误折算成用户可读的信封消息
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, h.validationMessage(err))
}

// validationMessage 优先返回第一条经翻译的校验错误
func (h *Handler) validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Translate(h.translator)
	}

	return err.Error()
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
	h.writeEnvelope(w, r, http.StatusInternalServerError, false, "服务器内部错误", nil)
}
