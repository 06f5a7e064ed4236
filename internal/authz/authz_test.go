package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velora-hq/velora-api/internal/models"
)

func membershipWithRole(role models.MembershipRole) *models.Membership {
	return &models.Membership{WorkspaceID: 1, UserID: 42, Role: role}
}

func TestAuthorize_NilMembershipAlwaysDenied(t *testing.T) {
	actions := []Action{
		ActionReadWorkspace,
		ActionWriteRecord,
		ActionUpdateTaskStatus,
		ActionReadLedger,
		ActionManageLedger,
		ActionManageWorkspace,
	}

	for _, action := range actions {
		err := Authorize(nil, action)
		require.ErrorIs(t, err, ErrNotAMember)
		require.ErrorIs(t, err, ErrDenied)
	}
}

func TestAuthorize_DecisionTable(t *testing.T) {
	cases := []struct {
		role    models.MembershipRole
		action  Action
		allowed bool
	}{
		{models.RoleFounder, ActionReadWorkspace, true},
		{models.RoleManager, ActionReadWorkspace, true},
		{models.RoleMember, ActionReadWorkspace, true},
		{models.RoleInvestor, ActionReadWorkspace, true},

		{models.RoleFounder, ActionWriteRecord, true},
		{models.RoleManager, ActionWriteRecord, true},
		{models.RoleMember, ActionWriteRecord, true},
		{models.RoleInvestor, ActionWriteRecord, false},

		{models.RoleFounder, ActionReadLedger, true},
		{models.RoleManager, ActionReadLedger, true},
		{models.RoleMember, ActionReadLedger, true},
		{models.RoleInvestor, ActionReadLedger, false},

		{models.RoleFounder, ActionManageLedger, true},
		{models.RoleManager, ActionManageLedger, true},
		{models.RoleMember, ActionManageLedger, false},
		{models.RoleInvestor, ActionManageLedger, false},

		{models.RoleFounder, ActionManageWorkspace, true},
		{models.RoleManager, ActionManageWorkspace, false},
		{models.RoleMember, ActionManageWorkspace, false},
		{models.RoleInvestor, ActionManageWorkspace, false},
	}

	for _, tc := range cases {
		err := Authorize(membershipWithRole(tc.role), tc.action)
		if tc.allowed {
			require.NoError(t, err, "role %s should hold %s", tc.role, tc.action)
		} else {
			require.ErrorIs(t, err, ErrInsufficientRole, "role %s should lack %s", tc.role, tc.action)
		}
	}
}

func TestCanUpdateTaskStatus(t *testing.T) {
	assignee := uint64(42)
	other := uint64(7)

	assignedTask := &models.Task{AssignedTo: &assignee}
	unassignedTask := &models.Task{}
	othersTask := &models.Task{AssignedTo: &other}

	require.NoError(t, CanUpdateTaskStatus(membershipWithRole(models.RoleFounder), othersTask))
	require.NoError(t, CanUpdateTaskStatus(membershipWithRole(models.RoleManager), othersTask))

	require.NoError(t, CanUpdateTaskStatus(membershipWithRole(models.RoleMember), assignedTask))
	require.ErrorIs(t, CanUpdateTaskStatus(membershipWithRole(models.RoleMember), unassignedTask), ErrInsufficientRole)
	require.ErrorIs(t, CanUpdateTaskStatus(membershipWithRole(models.RoleMember), othersTask), ErrInsufficientRole)

	require.ErrorIs(t, CanUpdateTaskStatus(membershipWithRole(models.RoleInvestor), assignedTask), ErrInsufficientRole)
	require.ErrorIs(t, CanUpdateTaskStatus(nil, assignedTask), ErrNotAMember)
}
