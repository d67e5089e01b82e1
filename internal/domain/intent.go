package domain

import "time"

// AssignmentUpdate 是发往外部存储的变更意图，核心不观察其结果
type AssignmentUpdate struct {
	AssignmentID string    `json:"assignmentId"`
	ShiftStart   time.Time `json:"shiftStart"`
	ShiftEnd     time.Time `json:"shiftEnd"`
}
