package dto

import (
	"time"

	"github.com/velora-hq/velora-api/internal/models"
)

// WorkspaceDTO represents a workspace in API responses. The invite code
// is only populated for the founder.
type WorkspaceDTO struct {
	ID               uint64                  `json:"id"`
	Name             string                  `json:"name"`
	Description      string                  `json:"description,omitempty"`
	Industry         string                  `json:"industry,omitempty"`
	Stage            string                  `json:"stage,omitempty"`
	Website          string                  `json:"website,omitempty"`
	FounderID        uint64                  `json:"founder_id"`
	InviteCode       string                  `json:"invite_code,omitempty"`
	SubscriptionPlan models.SubscriptionPlan `json:"subscription_plan"`
	CreatedAt        time.Time               `json:"created_at"`
}

// WorkspaceWithRoleDTO represents a workspace with the user's role
type WorkspaceWithRoleDTO struct {
	WorkspaceDTO
	Role models.MembershipRole `json:"role"`
}

// MemberDTO represents a member in a workspace
type MemberDTO struct {
	User     UserDTO               `json:"user"`
	Role     models.MembershipRole `json:"role"`
	JoinedAt time.Time             `json:"joined_at"`
}

// WorkspaceDetailDTO represents detailed workspace information
type WorkspaceDetailDTO struct {
	WorkspaceDTO
	Members  []MemberDTO           `json:"members"`
	YourRole models.MembershipRole `json:"your_role"`
}

// ToWorkspaceDTO converts a Workspace model to WorkspaceDTO
func ToWorkspaceDTO(workspace models.Workspace, includeInviteCode bool) WorkspaceDTO {
	dto := WorkspaceDTO{
		ID:               workspace.ID,
		Name:             workspace.Name,
		Description:      workspace.Description,
		Industry:         workspace.Industry,
		Stage:            workspace.Stage,
		Website:          workspace.Website,
		FounderID:        workspace.FounderID,
		SubscriptionPlan: workspace.SubscriptionPlan,
		CreatedAt:        workspace.CreatedAt,
	}
	if includeInviteCode {
		dto.InviteCode = workspace.InviteCode
	}
	return dto
}

// ToWorkspaceWithRoleDTO converts a membership to a workspace DTO with role
func ToWorkspaceWithRoleDTO(member models.Membership) WorkspaceWithRoleDTO {
	return WorkspaceWithRoleDTO{
		WorkspaceDTO: ToWorkspaceDTO(member.Workspace, member.Role == models.RoleFounder),
		Role:         member.Role,
	}
}

// ToMemberDTO converts a membership to MemberDTO
func ToMemberDTO(member models.Membership) MemberDTO {
	return MemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToWorkspaceDetailDTO converts a workspace with members to a detailed DTO.
// Only the founder sees the invite code.
func ToWorkspaceDetailDTO(workspace models.Workspace, members []models.Membership, yourRole models.MembershipRole) WorkspaceDetailDTO {
	memberDTOs := make([]MemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToMemberDTO(member)
	}

	return WorkspaceDetailDTO{
		WorkspaceDTO: ToWorkspaceDTO(workspace, yourRole == models.RoleFounder),
		Members:      memberDTOs,
		YourRole:     yourRole,
	}
}
