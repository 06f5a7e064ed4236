package models

import (
	"time"

	"gorm.io/gorm"
)

type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

// Valid reports whether the status is one of the known milestone statuses.
func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	}
	return false
}

type Milestone struct {
	ID          uint64          `gorm:"primarykey" json:"id"`
	WorkspaceID uint64          `gorm:"not null;index" json:"workspace_id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Status      MilestoneStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TargetDate  *time.Time      `json:"target_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}
