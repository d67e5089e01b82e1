package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smart-maple/roster-calendar/backend/internal/config"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/smart-maple/roster-calendar/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	h, err := NewHandler(cfg, repository.NewRepository(cfg, nil), nil, nil)
	require.NoError(t, err)
	return h
}

func authedRequest(method, target, body string, user *domain.User) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if user != nil {
		r = r.WithContext(context.WithValue(r.Context(), MyInfoCtx, user))
	}
	return r
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()

	resp := Response{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}
