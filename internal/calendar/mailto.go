package calendar

import (
	"net/url"
	"strings"
	"time"
)

const (
	requestMailSubject   = "Vardiya Değişiklik Talebi"
	requestMailNoMessage = "Talep detayı eklenmemiştir."
)

// ComposeRequestMail 根据当前草稿生成 mailto 目标并交给宿主的邮件客户端。
// 正文按行 URL 编码后用 CRLF 连接。没有草稿时不做任何事。
func (s *State) ComposeRequestMail(recipient string, host Host) (string, bool) {
	if s.DraftRequest == nil {
		return "", false
	}

	req := s.DraftRequest
	staffName := s.StaffName(req.StaffID)

	displayDate := req.Date
	if parsed, err := time.Parse(DayKeyLayout, req.Date); err == nil {
		displayDate = parsed.Format(DisplayDateLayout)
	}

	message := req.Message
	if message == "" {
		message = requestMailNoMessage
	}

	lines := []string{
		"Personel: " + staffName,
		"Tarih: " + displayDate,
		"Başlangıç: " + orDash(req.StartTime),
		"Bitiş: " + orDash(req.EndTime),
		"",
		message,
	}

	encoded := make([]string, len(lines))
	for i, line := range lines {
		encoded[i] = encodeMailComponent(line)
	}

	target := "mailto:" + recipient +
		"?subject=" + encodeMailComponent(requestMailSubject) +
		"&body=" + strings.Join(encoded, "%0D%0A")

	if host != nil {
		host.ComposeMail(target)
	}
	return target, true
}

// encodeMailComponent 按 mailto 约定编码，空格必须是 %20 而不是 +
func encodeMailComponent(component string) string {
	return strings.ReplaceAll(url.QueryEscape(component), "+", "%20")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
