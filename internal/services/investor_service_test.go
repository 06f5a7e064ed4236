package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velora-hq/velora-api/internal/constants"
	"github.com/velora-hq/velora-api/internal/models"
)

func (env *serviceTestEnv) createInvite(t *testing.T, workspaceID, founderID uint64, email string) *models.InvestorInvite {
	t.Helper()
	invite, err := env.investorService.InviteInvestor(InviteInvestorInput{
		WorkspaceID: workspaceID,
		Email:       email,
		CreatedBy:   founderID,
	})
	require.NoError(t, err)
	return invite
}

func TestInvestorService_InviteInvestor(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	invite := env.createInvite(t, workspace.ID, founder.ID, "Angel@Example.com")
	require.Equal(t, "angel@example.com", invite.Email)
	require.Equal(t, models.InviteStatusPending, invite.Status)
	require.Len(t, invite.InviteCode, constants.InviteCodeLength)
}

func TestInvestorService_AcceptInvite(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	invite := env.createInvite(t, workspace.ID, founder.ID, "angel@example.com")

	investor := env.createUser(t, "angel@example.com")
	joined, err := env.investorService.AcceptInvite(investor.ID, invite.InviteCode)
	require.NoError(t, err)
	require.Equal(t, workspace.ID, joined.ID)

	member, err := env.workspaceRepo.FindMember(workspace.ID, investor.ID)
	require.NoError(t, err)
	require.Equal(t, models.RoleInvestor, member.Role)
}

func TestInvestorService_AcceptInvite_SingleUse(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	invite := env.createInvite(t, workspace.ID, founder.ID, "angel@example.com")

	first := env.createUser(t, "angel@example.com")
	_, err := env.investorService.AcceptInvite(first.ID, invite.InviteCode)
	require.NoError(t, err)

	// A second accept of the same code fails as a not-found; the code is
	// never reusable.
	second := env.createUser(t, "other@example.com")
	_, err = env.investorService.AcceptInvite(second.ID, invite.InviteCode)
	require.ErrorIs(t, err, ErrInviteNotFound)
}

func TestInvestorService_AcceptInvite_BypassesFreePlanCap(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	env.joinMembers(t, workspace, constants.FreePlanMemberLimit-1)

	invite := env.createInvite(t, workspace.ID, founder.ID, "angel@example.com")
	investor := env.createUser(t, "angel@example.com")

	_, err := env.investorService.AcceptInvite(investor.ID, invite.InviteCode)
	require.NoError(t, err)

	count, err := env.workspaceRepo.CountMembers(workspace.ID)
	require.NoError(t, err)
	require.EqualValues(t, constants.FreePlanMemberLimit+1, count)
}

func TestInvestorService_AcceptInvite_AlreadyMember(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	invite := env.createInvite(t, workspace.ID, founder.ID, "founder@example.com")

	_, err := env.investorService.AcceptInvite(founder.ID, invite.InviteCode)
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestInvestorService_ListInvestors(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	accepted := env.createInvite(t, workspace.ID, founder.ID, "angel@example.com")
	investor := env.createUser(t, "angel@example.com")
	_, err := env.investorService.AcceptInvite(investor.ID, accepted.InviteCode)
	require.NoError(t, err)

	env.createInvite(t, workspace.ID, founder.ID, "pending@example.com")

	entries, err := env.investorService.ListInvestors(workspace.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, models.InviteStatusAccepted, entries[0].Status)
	require.Equal(t, "angel@example.com", entries[0].Email)
	require.NotNil(t, entries[0].UserID)

	require.Equal(t, models.InviteStatusPending, entries[1].Status)
	require.Equal(t, "pending@example.com", entries[1].Email)
	require.Nil(t, entries[1].UserID)
}

func TestInvestorService_RemoveInvestor(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	invite := env.createInvite(t, workspace.ID, founder.ID, "angel@example.com")

	investor := env.createUser(t, "angel@example.com")
	_, err := env.investorService.AcceptInvite(investor.ID, invite.InviteCode)
	require.NoError(t, err)

	require.NoError(t, env.investorService.RemoveInvestor(workspace.ID, investor.ID))

	_, err = env.workspaceRepo.FindMember(workspace.ID, investor.ID)
	require.Error(t, err)
}

func TestInvestorService_RemoveInvestor_NotAnInvestor(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")
	members := env.joinMembers(t, workspace, 1)

	err := env.investorService.RemoveInvestor(workspace.ID, members[0].ID)
	require.ErrorIs(t, err, ErrNotAnInvestor)
}

func TestInvestorService_InvestorView_AggregatesOnly(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	_, err := env.financeService.AddExpense(AddExpenseInput{
		WorkspaceID: workspace.ID,
		Title:       "hosting",
		Amount:      300,
		CreatedBy:   founder.ID,
	})
	require.NoError(t, err)
	_, err = env.financeService.AddIncome(AddIncomeInput{
		WorkspaceID: workspace.ID,
		Title:       "first customer",
		Amount:      900,
		CreatedBy:   founder.ID,
	})
	require.NoError(t, err)

	view, err := env.investorService.InvestorView(workspace.ID)
	require.NoError(t, err)
	require.Equal(t, workspace.Name, view.Workspace.Name)
	require.Equal(t, 1, view.Metrics.TeamSize)
	require.InDelta(t, 600.0, view.Financials.CurrentBalance, 0.001)
	require.NotNil(t, view.Investments)
}
