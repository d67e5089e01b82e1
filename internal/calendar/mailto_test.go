package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeRequestMail(t *testing.T) {
	s := NewState(testSchedule())
	s.ClickEvent("a1")
	s.UpdateDraft("", "", "", "Acil aile durumu")

	host := newFakeHost(false)
	target, ok := s.ComposeRequestMail("planner@smart-maple.com", host)
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(target, "mailto:planner@smart-maple.com?subject="))
	assert.Contains(t, target, encodeMailComponent(requestMailSubject))

	// 正文按行编码后用 CRLF 连接，空格必须是 %20
	assert.Contains(t, target, "%0D%0A")
	assert.NotContains(t, target, "+")
	assert.Contains(t, target, "Personel%3A%20Tuba")
	assert.Contains(t, target, encodeMailComponent("Tarih: 02 October 2025"))
	assert.Contains(t, target, encodeMailComponent("Başlangıç: 08:00"))
	assert.Contains(t, target, encodeMailComponent("Acil aile durumu"))

	// 目标交给宿主的邮件客户端
	assert.Equal(t, []string{target}, host.mailTargets)
}

func TestComposeRequestMailDefaultsMessage(t *testing.T) {
	s := NewState(testSchedule())
	s.ClickEvent("a1")

	target, ok := s.ComposeRequestMail("planner@smart-maple.com", nil)
	require.True(t, ok)
	assert.Contains(t, target, encodeMailComponent(requestMailNoMessage))
}

func TestComposeRequestMailWithoutDraft(t *testing.T) {
	s := NewState(testSchedule())

	host := newFakeHost(false)
	target, ok := s.ComposeRequestMail("planner@smart-maple.com", host)
	assert.False(t, ok)
	assert.Equal(t, "", target)
	assert.Empty(t, host.mailTargets)
}

func TestEncodeMailComponent(t *testing.T) {
	assert.Equal(t, "Vardiya%20Talebi", encodeMailComponent("Vardiya Talebi"))
	assert.Equal(t, "08%3A00", encodeMailComponent("08:00"))
	// 非 ASCII 按 UTF-8 字节编码
	assert.Equal(t, "De%C4%9Fi%C5%9Fiklik", encodeMailComponent("Değişiklik"))
}
