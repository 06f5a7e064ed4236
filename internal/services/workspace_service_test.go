package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
)

func TestWorkspaceService_CreateWorkspace(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")

	workspace, err := env.workspaceService.CreateWorkspace(CreateWorkspaceInput{
		Name:      "Velora",
		Industry:  "saas",
		FounderID: founder.ID,
	})
	require.NoError(t, err)
	require.Len(t, workspace.InviteCode, constants.InviteCodeLength)
	require.Equal(t, "idea", workspace.Stage)
	require.Equal(t, models.PlanFree, workspace.SubscriptionPlan)

	member, err := env.workspaceRepo.FindMember(workspace.ID, founder.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleFounder, member.Role)
}

func TestWorkspaceService_CreateWorkspace_EmptyName(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")

	_, err := env.workspaceService.CreateWorkspace(CreateWorkspaceInput{
		Name:      "   ",
		FounderID: founder.ID,
	})
	require.ErrorIs(t, err, ErrInvalidWorkspaceName)
}

func TestWorkspaceService_JoinByInviteCode(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	joiner := env.createUser(t, "joiner@example.com")

	joined, err := env.workspaceService.JoinByInviteCode(joiner.ID, workspace.InviteCode)
	require.NoError(t, err)
	require.Equal(t, workspace.ID, joined.ID)

	member, err := env.workspaceRepo.FindMember(workspace.ID, joiner.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)
}

func TestWorkspaceService_JoinByInviteCode_InvalidCode(t *testing.T) {
	env := setupServiceEnv(t)
	joiner := env.createUser(t, "joiner@example.com")

	_, err := env.workspaceService.JoinByInviteCode(joiner.ID, "NOPE1234")
	require.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestWorkspaceService_JoinByInviteCode_AlreadyMember(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	_, err := env.workspaceService.JoinByInviteCode(founder.ID, workspace.InviteCode)
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestWorkspaceService_JoinByInviteCode_FreePlanCap(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	// Founder plus four joins fills the free plan.
	env.joinMembers(t, workspace, constants.FreePlanMemberLimit-1)

	overflow := env.createUser(t, "overflow@example.com")
	_, err := env.workspaceService.JoinByInviteCode(overflow.ID, workspace.InviteCode)
	require.ErrorIs(t, err, ErrTeamLimitReached)
}

func TestWorkspaceService_JoinByInviteCode_PaidPlanUncapped(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	env.joinMembers(t, workspace, constants.FreePlanMemberLimit-1)

	_, err := env.workspaceService.UpdateSubscription(workspace.ID, models.PlanPro)
	require.NoError(t, err)

	overflow := env.createUser(t, "overflow@example.com")
	_, err = env.workspaceService.JoinByInviteCode(overflow.ID, workspace.InviteCode)
	require.NoError(t, err)

	count, err := env.workspaceRepo.CountMembers(workspace.ID)
	require.NoError(t, err)
	require.EqualValues(t, constants.FreePlanMemberLimit+1, count)
}

func TestWorkspaceService_RegenerateInviteCode(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	oldCode := workspace.InviteCode

	updated, err := env.workspaceService.RegenerateInviteCode(workspace.ID)
	require.NoError(t, err)
	require.NotEqual(t, oldCode, updated.InviteCode)

	// The old code no longer resolves.
	joiner := env.createUser(t, "joiner@example.com")
	_, err = env.workspaceService.JoinByInviteCode(joiner.ID, oldCode)
	require.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestWorkspaceService_ChangeMemberRole(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	members := env.joinMembers(t, workspace, 1)

	err := env.workspaceService.ChangeMemberRole(workspace.ID, members[0].ID, models.RoleManager)
	require.NoError(t, err)

	member, err := env.workspaceRepo.FindMember(workspace.ID, members[0].ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, member.Role)
}

func TestWorkspaceService_ChangeMemberRole_FounderImmutable(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	err := env.workspaceService.ChangeMemberRole(workspace.ID, founder.ID, models.RoleManager)
	require.ErrorIs(t, err, ErrFounderImmutable)
}

func TestWorkspaceService_ChangeMemberRole_FounderNotAssignable(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	members := env.joinMembers(t, workspace, 1)

	err := env.workspaceService.ChangeMemberRole(workspace.ID, members[0].ID, models.RoleFounder)
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestWorkspaceService_RemoveMember(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	members := env.joinMembers(t, workspace, 1)

	err := env.workspaceService.RemoveMember(workspace.ID, founder.ID, members[0].ID)
	require.NoError(t, err)

	_, err = env.workspaceRepo.FindMember(workspace.ID, members[0].ID)
	require.Error(t, err)
}

func TestWorkspaceService_RemoveMember_Self(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	err := env.workspaceService.RemoveMember(workspace.ID, founder.ID, founder.ID)
	require.ErrorIs(t, err, ErrCannotRemoveSelf)
}

func TestWorkspaceService_RemoveMember_FounderUnremovable(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	members := env.joinMembers(t, workspace, 1)

	err := env.workspaceService.RemoveMember(workspace.ID, members[0].ID, founder.ID)
	require.ErrorIs(t, err, ErrFounderImmutable)
}

func TestWorkspaceService_GetSubscription_CreatesDefault(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	sub, err := env.workspaceService.GetSubscription(workspace.ID)
	require.NoError(t, err)
	require.Equal(t, models.PlanFree, sub.Plan)
	require.Equal(t, "active", sub.Status)
}

func TestWorkspaceService_UpdateSubscription_MirrorsOntoWorkspace(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	sub, err := env.workspaceService.UpdateSubscription(workspace.ID, models.PlanEnterprise)
	require.NoError(t, err)
	require.Equal(t, models.PlanEnterprise, sub.Plan)

	reloaded, err := env.workspaceRepo.FindByID(workspace.ID)
	require.NoError(t, err)
	require.Equal(t, models.PlanEnterprise, reloaded.SubscriptionPlan)
}

func TestWorkspaceService_UpdateSubscription_InvalidPlan(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	_, err := env.workspaceService.UpdateSubscription(workspace.ID, "platinum")
	require.ErrorIs(t, err, ErrInvalidPlan)
}

func TestWorkspaceService_DeleteWorkspace_RemovesChildren(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	_, err := env.taskService.CreateTask(CreateTaskInput{
		WorkspaceID: workspace.ID,
		Title:       "ship it",
		CreatedBy:   founder.ID,
	})
	require.NoError(t, err)

	err = env.workspaceService.DeleteWorkspace(workspace.ID)
	require.NoError(t, err)

	_, err = env.workspaceService.ListMembers(workspace.ID)
	require.NoError(t, err)

	tasks, _, err := env.taskService.ListTasks(workspace.ID, repository.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)

	_, err = env.workspaceRepo.FindByID(workspace.ID)
	require.Error(t, err)
}
