package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	h := newTestHandler(t)
	rr := httptest.NewRecorder()
	user := &domain.User{ID: 1, Username: "tuba", FullName: "Tuba", Language: "tr"}

	h.GetProfile(rr, authedRequest(http.MethodGet, "/profile", "", user))

	resp := decodeResponse(t, rr)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tuba", data["username"])
	assert.Equal(t, "tr", data["language"])
}

func TestUpdateProfileLanguageRejectsUnknown(t *testing.T) {
	h := newTestHandler(t)
	user := &domain.User{ID: 1, Username: "tuba", Language: "tr"}

	rr := httptest.NewRecorder()
	h.UpdateProfileLanguage(rr, authedRequest(http.MethodPatch, "/profile/language", `{"language":"xx"}`, user))

	resp := decodeResponse(t, rr)
	assert.False(t, resp.Success)
	// 校验失败时不触及用户记录
	assert.Equal(t, "tr", user.Language)
}

func TestUpdateProfileLanguageRejectsBadBody(t *testing.T) {
	h := newTestHandler(t)
	user := &domain.User{ID: 1, Username: "tuba", Language: "tr"}

	rr := httptest.NewRecorder()
	h.UpdateProfileLanguage(rr, authedRequest(http.MethodPatch, "/profile/language", "not-json", user))

	resp := decodeResponse(t, rr)
	assert.False(t, resp.Success)
	assert.Equal(t, "tr", user.Language)
}
