package repository

import (
	"github.com/velora-hq/velora-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user's profile fields
	Update(user *models.User) error

	// FindByIDs returns the users for a set of IDs
	FindByIDs(ids []uint64) ([]models.User, error)
}

// WorkspaceRepository defines the interface for workspace and membership
// data access. Membership uniqueness per (workspace, user) is backed by a
// composite unique index; Insert surfaces the conflict.
type WorkspaceRepository interface {
	// CreateWithFounder creates the workspace and its founder membership
	// within a single transaction.
	CreateWithFounder(workspace *models.Workspace, member *models.Membership) error

	// FindByID finds a workspace by ID
	FindByID(id uint64) (*models.Workspace, error)

	// FindByInviteCode finds a workspace by its join code
	FindByInviteCode(code string) (*models.Workspace, error)

	// Update updates a workspace
	Update(workspace *models.Workspace) error

	// Delete removes a workspace and all of its child records in a
	// transaction.
	Delete(id uint64) error

	// AddMember inserts a membership; a duplicate (workspace, user) pair
	// fails with gorm.ErrDuplicatedKey.
	AddMember(member *models.Membership) error

	// RemoveMember removes a membership
	RemoveMember(workspaceID, userID uint64) error

	// FindMember finds a specific membership
	FindMember(workspaceID, userID uint64) (*models.Membership, error)

	// UpdateMemberRole changes a membership's role
	UpdateMemberRole(workspaceID, userID uint64, role models.MembershipRole) error

	// ListMembers lists all memberships of a workspace
	ListMembers(workspaceID uint64) ([]models.Membership, error)

	// ListMembersByRole lists a workspace's memberships with a given role
	ListMembersByRole(workspaceID uint64, role models.MembershipRole) ([]models.Membership, error)

	// ListMembershipsByUserID lists all workspaces a user belongs to
	ListMembershipsByUserID(userID uint64) ([]models.Membership, error)

	// CountMembers counts a workspace's memberships
	CountMembers(workspaceID uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint64) (*models.Task, error)

	// List retrieves a workspace's tasks with filtering and pagination
	List(workspaceID uint64, filter TaskFilter) ([]models.Task, int64, error)

	ListByWorkspace(workspaceID uint64) ([]models.Task, error)
	ListByMilestone(milestoneID uint64) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uint64) error
}

// TaskFilter narrows and pages a task listing. Zero Page or PageSize
// disables pagination.
type TaskFilter struct {
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssignedTo  *uint64
	MilestoneID *uint64
	Page        int
	PageSize    int
}

// MilestoneRepository defines the interface for milestone data access
type MilestoneRepository interface {
	Create(milestone *models.Milestone) error
	FindByID(id uint64) (*models.Milestone, error)
	ListByWorkspace(workspaceID uint64) ([]models.Milestone, error)
	Update(milestone *models.Milestone) error

	// DeleteAndDetachTasks removes the milestone and clears milestone_id
	// on every task referencing it, as one transaction.
	DeleteAndDetachTasks(id uint64) error
}

// FeedbackRepository defines the interface for feedback data access.
// Feedback has no update or delete path.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	ListByWorkspace(workspaceID uint64) ([]models.Feedback, error)
}

// FinanceRepository defines the interface for the financial ledgers
type FinanceRepository interface {
	CreateIncome(income *models.Income) error
	ListIncome(workspaceID uint64) ([]models.Income, error)
	DeleteIncome(workspaceID, id uint64) error

	CreateExpense(expense *models.Expense) error
	ListExpenses(workspaceID uint64) ([]models.Expense, error)
	DeleteExpense(workspaceID, id uint64) error

	CreateInvestment(investment *models.Investment) error
	ListInvestments(workspaceID uint64) ([]models.Investment, error)
	DeleteInvestment(workspaceID, id uint64) error
}

// InvestorInviteRepository defines the interface for single-use investor
// invites.
type InvestorInviteRepository interface {
	Create(invite *models.InvestorInvite) error

	// FindPendingByCode finds a pending invite by code; accepted or
	// absent codes are both a not-found.
	FindPendingByCode(code string) (*models.InvestorInvite, error)

	// MarkAccepted transitions a pending invite to accepted. The
	// transition is guarded on the pending status so a concurrent accept
	// of the same code updates zero rows.
	MarkAccepted(id uint64) (bool, error)

	ListPendingByWorkspace(workspaceID uint64) ([]models.InvestorInvite, error)
}

// SubscriptionRepository defines the interface for subscription records
type SubscriptionRepository interface {
	FindByWorkspace(workspaceID uint64) (*models.Subscription, error)
	Create(sub *models.Subscription) error
	Update(sub *models.Subscription) error
}
