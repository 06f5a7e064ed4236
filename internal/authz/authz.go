// Package authz centralizes the membership-role decision table. Every
// handler consults Authorize instead of re-deriving role logic inline,
// and callers always pass a membership freshly resolved from the store so
// a concurrent role change cannot leave a stale-privilege window.
package authz

import (
	"errors"

	"github.com/velora-hq/velora-api/internal/models"
)

// Action is a class of operation gated by the decision table.
type Action string

const (
	// ActionReadWorkspace covers reading tasks, milestones, feedback and
	// the analytics summary. All roles hold it; investors are read-only
	// everywhere else.
	ActionReadWorkspace Action = "read_workspace"

	// ActionWriteRecord covers creating, updating and deleting tasks,
	// milestones and feedback.
	ActionWriteRecord Action = "write_record"

	// ActionUpdateTaskStatus is the status-only task update. Members hold
	// it only for tasks assigned to them; see CanUpdateTaskStatus.
	ActionUpdateTaskStatus Action = "update_task_status"

	// ActionReadLedger covers reading the itemized ledgers and the
	// finance summary. Investors never hold it; their window into the
	// finances is the aggregate-only investor view.
	ActionReadLedger Action = "read_ledger"

	// ActionManageLedger covers creating and deleting income and expense
	// records.
	ActionManageLedger Action = "manage_ledger"

	// ActionManageWorkspace covers investment records, investor
	// management, invite codes, member roles, member removal and
	// subscription changes. Founder only.
	ActionManageWorkspace Action = "manage_workspace"
)

// ErrDenied is the base error for all authorization denials. Use
// errors.Is(err, ErrDenied) to test a result without distinguishing the
// reason.
var ErrDenied = errors.New("access denied")

var (
	// ErrNotAMember denies actors with no membership in the workspace,
	// regardless of the action.
	ErrNotAMember = wrap("not a member of this workspace")

	// ErrInsufficientRole denies members whose role lacks the action.
	ErrInsufficientRole = wrap("role does not permit this action")
)

func wrap(msg string) error {
	return &denial{msg: msg}
}

type denial struct{ msg string }

func (d *denial) Error() string        { return d.msg }
func (d *denial) Unwrap() error        { return ErrDenied }
func (d *denial) Is(target error) bool { return target == ErrDenied }

// Authorize decides whether a membership permits an action class. A nil
// membership always denies with ErrNotAMember. The role hierarchy is not
// total: founder covers manager on finance actions, but manager and
// member are otherwise incomparable.
func Authorize(member *models.Membership, action Action) error {
	if member == nil {
		return ErrNotAMember
	}

	switch action {
	case ActionReadWorkspace:
		return nil
	case ActionWriteRecord:
		switch member.Role {
		case models.RoleFounder, models.RoleManager, models.RoleMember:
			return nil
		}
	case ActionUpdateTaskStatus:
		// Members need assignment; resolved by CanUpdateTaskStatus.
		switch member.Role {
		case models.RoleFounder, models.RoleManager, models.RoleMember:
			return nil
		}
	case ActionReadLedger:
		switch member.Role {
		case models.RoleFounder, models.RoleManager, models.RoleMember:
			return nil
		}
	case ActionManageLedger:
		switch member.Role {
		case models.RoleFounder, models.RoleManager:
			return nil
		}
	case ActionManageWorkspace:
		if member.Role == models.RoleFounder {
			return nil
		}
	}

	return ErrInsufficientRole
}

// CanUpdateTaskStatus decides the status-only task update: founders and
// managers may always update, members only when the task is assigned to
// them, investors never.
func CanUpdateTaskStatus(member *models.Membership, task *models.Task) error {
	if member == nil {
		return ErrNotAMember
	}

	switch member.Role {
	case models.RoleFounder, models.RoleManager:
		return nil
	case models.RoleMember:
		if task.AssignedTo != nil && *task.AssignedTo == member.UserID {
			return nil
		}
	}

	return ErrInsufficientRole
}
