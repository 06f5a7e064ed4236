package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
)

// InvestorInvite is a single-use, email-targeted invite. Acceptance
// transitions status to accepted irreversibly; the code is never reusable.
type InvestorInvite struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	WorkspaceID uint64       `gorm:"not null;index" json:"workspace_id"`
	Email       string       `gorm:"type:varchar(255);not null" json:"email"`
	Name        string       `gorm:"type:varchar(255)" json:"name"`
	InviteCode  string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`
	Status      InviteStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedBy   uint64       `gorm:"not null" json:"created_by"`
	AcceptedAt  *time.Time   `json:"accepted_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
