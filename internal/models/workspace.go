package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionPlan string

const (
	PlanFree       SubscriptionPlan = "free"
	PlanPro        SubscriptionPlan = "pro"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// Valid reports whether the plan is one of the known subscription plans.
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// Paid reports whether the plan lifts the free-plan member cap.
func (p SubscriptionPlan) Paid() bool {
	return p.Valid() && p != PlanFree
}

type Workspace struct {
	ID               uint64           `gorm:"primarykey" json:"id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Description      string           `gorm:"type:text" json:"description"`
	Industry         string           `gorm:"type:varchar(100)" json:"industry"`
	Stage            string           `gorm:"type:varchar(50)" json:"stage"`
	Website          string           `gorm:"type:varchar(512)" json:"website"`
	FounderID        uint64           `gorm:"not null" json:"founder_id"`
	InviteCode       string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`
	SubscriptionPlan SubscriptionPlan `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_plan"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Members []Membership `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Tasks   []Task       `gorm:"foreignKey:WorkspaceID" json:"tasks,omitempty"`
}
