package models

import "time"

type MembershipRole string

const (
	RoleFounder  MembershipRole = "founder"
	RoleManager  MembershipRole = "manager"
	RoleMember   MembershipRole = "member"
	RoleInvestor MembershipRole = "investor"
)

// Valid reports whether the role is one of the known membership roles.
func (r MembershipRole) Valid() bool {
	switch r {
	case RoleFounder, RoleManager, RoleMember, RoleInvestor:
		return true
	}
	return false
}

// Assignable reports whether a founder may assign this role to another
// member. The founder role itself is created with the workspace and never
// reassigned.
func (r MembershipRole) Assignable() bool {
	switch r {
	case RoleManager, RoleMember, RoleInvestor:
		return true
	}
	return false
}

// Membership binds a user to a workspace with a role. The composite
// unique index enforces at most one membership per (workspace, user) pair.
type Membership struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	WorkspaceID uint64         `gorm:"not null;uniqueIndex:idx_memberships_workspace_user" json:"workspace_id"`
	UserID      uint64         `gorm:"not null;uniqueIndex:idx_memberships_workspace_user" json:"user_id"`
	Role        MembershipRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt    time.Time      `json:"joined_at"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
