package domain

import (
	"time"
)

type Role string

const (
	RoleAssistant Role = "assistant"
	RolePlanner   Role = "planner"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Language     string    `json:"language"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
