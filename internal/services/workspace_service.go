package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"github.com/velora-hq/velora-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrInvalidWorkspaceName = errors.New("workspace name cannot be empty")
	ErrInvalidInviteCode    = errors.New("invalid invite code")
	ErrAlreadyMember        = errors.New("user is already a member of this workspace")
	ErrTeamLimitReached     = errors.New("team limit reached for the free plan")
	ErrMemberNotFound       = errors.New("workspace member not found")
	ErrCannotRemoveSelf     = errors.New("cannot remove yourself from the workspace")
	ErrFounderImmutable     = errors.New("the founder role cannot be changed")
	ErrInvalidRole          = errors.New("role must be manager, member, or investor")
	ErrInvalidPlan          = errors.New("invalid subscription plan")
)

// inviteCodeAttempts bounds the regenerate-and-retry loop on invite code
// collisions.
const inviteCodeAttempts = 5

// WorkspaceService provides business logic for workspace, membership and
// subscription operations.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	subRepo       repository.SubscriptionRepository
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(workspaceRepo repository.WorkspaceRepository, subRepo repository.SubscriptionRepository) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		subRepo:       subRepo,
	}
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name        string
	Description string
	Industry    string
	Stage       string
	Website     string
	FounderID   uint64
}

// CreateWorkspace creates a workspace and its founder membership
// atomically. The founder membership is never reassignable afterwards.
func (s *WorkspaceService) CreateWorkspace(input CreateWorkspaceInput) (*models.Workspace, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidWorkspaceName
	}

	stage := input.Stage
	if stage == "" {
		stage = "idea"
	}

	workspace := &models.Workspace{
		Name:             input.Name,
		Description:      input.Description,
		Industry:         input.Industry,
		Stage:            stage,
		Website:          input.Website,
		FounderID:        input.FounderID,
		SubscriptionPlan: models.PlanFree,
	}

	member := &models.Membership{
		Role:     models.RoleFounder,
		JoinedAt: time.Now(),
	}

	var err error
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		workspace.InviteCode = utils.GenerateInviteCode()
		err = s.workspaceRepo.CreateWithFounder(workspace, member)
		if err == nil {
			return workspace, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}

	return nil, fmt.Errorf("failed to create workspace: %w", err)
}

// ListWorkspacesForUser returns the memberships (with workspaces) the
// user holds.
func (s *WorkspaceService) ListWorkspacesForUser(userID uint64) ([]models.Membership, error) {
	memberships, err := s.workspaceRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return memberships, nil
}

// UpdateWorkspaceInput holds the optional workspace fields to change.
// Absent fields are untouched.
type UpdateWorkspaceInput struct {
	Name        *string
	Description *string
	Industry    *string
	Stage       *string
	Website     *string
}

// UpdateWorkspace applies a partial patch to the workspace profile.
func (s *WorkspaceService) UpdateWorkspace(workspaceID uint64, input UpdateWorkspaceInput) (*models.Workspace, error) {
	workspace, err := s.findWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidWorkspaceName
		}
		workspace.Name = *input.Name
	}
	if input.Description != nil {
		workspace.Description = *input.Description
	}
	if input.Industry != nil {
		workspace.Industry = *input.Industry
	}
	if input.Stage != nil {
		workspace.Stage = *input.Stage
	}
	if input.Website != nil {
		workspace.Website = *input.Website
	}

	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	return workspace, nil
}

// DeleteWorkspace removes a workspace and everything it owns.
func (s *WorkspaceService) DeleteWorkspace(workspaceID uint64) error {
	if _, err := s.findWorkspace(workspaceID); err != nil {
		return err
	}

	if err := s.workspaceRepo.Delete(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

// JoinByInviteCode adds the actor to the workspace the code resolves to,
// with the member role. Free-plan workspaces cap total membership at
// five; paid plans have no ceiling.
func (s *WorkspaceService) JoinByInviteCode(userID uint64, inviteCode string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find workspace by invite code: %w", err)
	}

	if _, err := s.workspaceRepo.FindMember(workspace.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	if !workspace.SubscriptionPlan.Paid() {
		count, err := s.workspaceRepo.CountMembers(workspace.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count members: %w", err)
		}
		if count >= constants.FreePlanMemberLimit {
			return nil, ErrTeamLimitReached
		}
	}

	member := &models.Membership{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}

	if err := s.workspaceRepo.AddMember(member); err != nil {
		// The unique index backstops a concurrent join with the same user.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member to workspace: %w", err)
	}

	return workspace, nil
}

// RegenerateInviteCode rotates the workspace's join code, retrying on the
// rare collision.
func (s *WorkspaceService) RegenerateInviteCode(workspaceID uint64) (*models.Workspace, error) {
	workspace, err := s.findWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		workspace.InviteCode = utils.GenerateInviteCode()
		err = s.workspaceRepo.Update(workspace)
		if err == nil {
			return workspace, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}

	return nil, fmt.Errorf("failed to rotate invite code: %w", err)
}

// ListMembers returns a workspace's memberships with their user profiles.
func (s *WorkspaceService) ListMembers(workspaceID uint64) ([]models.Membership, error) {
	members, err := s.workspaceRepo.ListMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace members: %w", err)
	}
	return members, nil
}

// ChangeMemberRole assigns a new role to a member. The founder membership
// is immutable and the founder role is never assignable.
func (s *WorkspaceService) ChangeMemberRole(workspaceID, targetUserID uint64, newRole models.MembershipRole) error {
	if !newRole.Assignable() {
		return ErrInvalidRole
	}

	target, err := s.workspaceRepo.FindMember(workspaceID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find workspace member: %w", err)
	}

	if target.Role == models.RoleFounder {
		return ErrFounderImmutable
	}

	if err := s.workspaceRepo.UpdateMemberRole(workspaceID, targetUserID, newRole); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

// RemoveMember removes a member from the workspace. The acting founder
// cannot remove themselves, and the founder membership itself is never
// removable.
func (s *WorkspaceService) RemoveMember(workspaceID, actorID, targetUserID uint64) error {
	if targetUserID == actorID {
		return ErrCannotRemoveSelf
	}

	target, err := s.workspaceRepo.FindMember(workspaceID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find workspace member: %w", err)
	}

	if target.Role == models.RoleFounder {
		return ErrFounderImmutable
	}

	if err := s.workspaceRepo.RemoveMember(workspaceID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// GetSubscription returns the workspace's subscription record, creating
// the default free record on first read.
func (s *WorkspaceService) GetSubscription(workspaceID uint64) (*models.Subscription, error) {
	sub, err := s.subRepo.FindByWorkspace(workspaceID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	sub = &models.Subscription{
		WorkspaceID: workspaceID,
		Plan:        models.PlanFree,
		Status:      "active",
	}
	if err := s.subRepo.Create(sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}

// UpdateSubscription changes the workspace's plan and mirrors it onto the
// workspace record the capacity check reads.
func (s *WorkspaceService) UpdateSubscription(workspaceID uint64, plan models.SubscriptionPlan) (*models.Subscription, error) {
	if !plan.Valid() {
		return nil, ErrInvalidPlan
	}

	workspace, err := s.findWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	sub, err := s.GetSubscription(workspaceID)
	if err != nil {
		return nil, err
	}

	sub.Plan = plan
	sub.Status = "active"
	if err := s.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	workspace.SubscriptionPlan = plan
	if err := s.workspaceRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace plan: %w", err)
	}

	return sub, nil
}

func (s *WorkspaceService) findWorkspace(workspaceID uint64) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	return workspace, nil
}
