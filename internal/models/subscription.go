package models

import "time"

// Subscription is the per-workspace plan record. The active plan is also
// mirrored onto Workspace.SubscriptionPlan, which the join capacity check
// reads.
type Subscription struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	WorkspaceID uint64           `gorm:"not null;uniqueIndex" json:"workspace_id"`
	Plan        SubscriptionPlan `gorm:"type:varchar(20);not null;default:'free'" json:"plan"`
	Status      string           `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
