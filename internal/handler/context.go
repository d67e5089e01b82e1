package handler

type ContextKey string

const (
	RoleCtxKey ContextKey = "role"
	SubCtxKey  ContextKey = "sub"

	MyInfoCtx  ContextKey = "my-info"
	SessionCtx ContextKey = "calendar-session"
)
