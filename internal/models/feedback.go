package models

import "time"

// Feedback is immutable after creation; there is no update path.
// Category is an open set: ad hoc categories still aggregate.
type Feedback struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	WorkspaceID uint64    `gorm:"not null;index" json:"workspace_id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	Category    string    `gorm:"type:varchar(50);not null;default:'product'" json:"category"`
	Rating      int       `gorm:"not null;default:3" json:"rating"`
	Source      string    `gorm:"type:varchar(50);not null;default:'internal'" json:"source"`
	SubmittedBy uint64    `gorm:"not null" json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}
