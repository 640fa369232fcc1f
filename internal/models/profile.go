package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

type ProfileStatus string

const (
	StatusPending ProfileStatus = "pending"
	StatusActive  ProfileStatus = "active"
)

// PointKind selects which of the two independent counters a ledger delta
// targets.
type PointKind string

const (
	PointReward  PointKind = "reward"
	PointPenalty PointKind = "penalty"
)

func (k PointKind) Valid() bool {
	return k == PointReward || k == PointPenalty
}

type StudentProfile struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required"`
	Name     string   `json:"name" gorm:"not null;size:100" validate:"required"`
	School   string   `json:"school" gorm:"size:100"`
	Grade    int      `json:"grade"`
	Phone    string   `json:"phone" gorm:"size:20"`
	Role     UserRole `json:"role" gorm:"not null;default:student;index"`

	// Class membership is by name only; removing a class does not reassign
	// its students.
	ClassName string `json:"class_name" gorm:"size:100;index"`

	Status ProfileStatus `json:"status" gorm:"not null;default:pending;index"`

	// RewardPoints accumulates across the whole enrollment; PenaltyPoints is
	// monthly and cleared by an explicit bulk reset. Both are clamped at 0,
	// never negative.
	RewardPoints  int `json:"reward_points" gorm:"not null;default:0"`
	PenaltyPoints int `json:"penalty_points" gorm:"not null;default:0"`

	Character string `json:"character" gorm:"size:16"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StudentProfile) TableName() string {
	return "profiles"
}

// Points returns the current value of the targeted counter.
func (p *StudentProfile) Points(kind PointKind) int {
	if kind == PointPenalty {
		return p.PenaltyPoints
	}
	return p.RewardPoints
}
